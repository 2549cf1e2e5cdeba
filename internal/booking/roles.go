package booking

import "equiploan/internal/entity"

type Action string

const (
	ActionListEquipment   Action = "list_equipment"
	ActionCreateEquipment Action = "create_equipment"
	ActionDeleteEquipment Action = "delete_equipment"
	ActionCreateRequest   Action = "create_request"
	ActionListRequests    Action = "list_requests"
	ActionSetStatus       Action = "set_request_status"
)

// Таблица прав фиксированная, без состояния.
var permissions = map[Action]map[entity.Role]bool{
	ActionListEquipment: {
		entity.RoleStudent: true,
		entity.RoleStaff:   true,
		entity.RoleAdmin:   true,
	},
	ActionCreateEquipment: {
		entity.RoleAdmin: true,
	},
	ActionDeleteEquipment: {
		entity.RoleAdmin: true,
	},
	ActionCreateRequest: {
		entity.RoleStudent: true,
		entity.RoleStaff:   true,
		entity.RoleAdmin:   true,
	},
	ActionListRequests: {
		entity.RoleStaff: true,
		entity.RoleAdmin: true,
	},
	ActionSetStatus: {
		entity.RoleStaff: true,
		entity.RoleAdmin: true,
	},
}

func Allowed(role entity.Role, action Action) bool {
	return permissions[action][role]
}
