package rbac

// HasPermission decides whether a role may perform an action on a module.
//
// super_admin is an explicit override and always resolves to allow. Every
// other role is resolved by a first-match scan over its default permission
// list, where an entry matches if its module equals the requested module or
// the ModuleAll sentinel. Unknown roles, modules, or actions resolve to
// false; authorization misses are ordinary denials, never errors.
func HasPermission(role Role, module string, action Action) bool {
	if role == RoleSuperAdmin {
		return true
	}
	for _, perm := range DefaultPermissions(role) {
		if perm.Allows(module, action) {
			return true
		}
	}
	return false
}

// CanAccessModule reports whether a role can see a module at all. Module
// visibility is always and only a view-permission check.
func CanAccessModule(role Role, module string) bool {
	return HasPermission(role, module, ActionView)
}
