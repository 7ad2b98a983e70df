package rbac

// Action describes the kind of operation performed inside a module.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionManage  Action = "manage"
)

var allActions = map[Action]bool{
	ActionView:    true,
	ActionCreate:  true,
	ActionEdit:    true,
	ActionDelete:  true,
	ActionApprove: true,
	ActionManage:  true,
}

func (a Action) Valid() bool {
	return allActions[a]
}
