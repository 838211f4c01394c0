package auth

import "github.com/fekuna/omnipos-restaurant-service/internal/model"

// Operation names one guarded API action.
type Operation string

const (
	OpUserList       Operation = "user.list"
	OpUserGet        Operation = "user.get"
	OpUserCreate     Operation = "user.create"
	OpUserUpdate     Operation = "user.update"
	OpUserDelete     Operation = "user.delete"
	OpUserDeactivate Operation = "user.deactivate"
	OpUserProfile    Operation = "user.profile"

	OpTableRead    Operation = "table.read"
	OpTableCreate  Operation = "table.create"
	OpTableUpdate  Operation = "table.update"
	OpTableDelete  Operation = "table.delete"
	OpTableOpen    Operation = "table.open"
	OpTableClose   Operation = "table.close"
	OpTableReserve Operation = "table.reserve"

	OpMenuRead  Operation = "menu.read"
	OpMenuWrite Operation = "menu.write"

	OpOrderRead         Operation = "order.read"
	OpOrderCreate       Operation = "order.create"
	OpOrderUpdate       Operation = "order.update"
	OpOrderUpdateStatus Operation = "order.update_status"
	OpOrderDelete       Operation = "order.delete"

	OpPaymentRead    Operation = "payment.read"
	OpPaymentCreate  Operation = "payment.create"
	OpPaymentUpdate  Operation = "payment.update"
	OpPaymentProcess Operation = "payment.process"
	OpPaymentRefund  Operation = "payment.refund"
	OpPaymentDelete  Operation = "payment.delete"
	OpTableBill      Operation = "payment.table_bill"

	OpInventoryRead  Operation = "inventory.read"
	OpInventoryWrite Operation = "inventory.write"
	OpInventoryStock Operation = "inventory.stock"

	OpReportRead     Operation = "report.read"
	OpReportGenerate Operation = "report.generate"
)

var (
	everyone     = []model.Role{model.RoleAdmin, model.RoleWaiter, model.RoleChef, model.RoleCashier}
	adminOnly    = []model.Role{model.RoleAdmin}
	floorStaff   = []model.Role{model.RoleAdmin, model.RoleWaiter}
	kitchenFloor = []model.Role{model.RoleAdmin, model.RoleWaiter, model.RoleChef}
	till         = []model.Role{model.RoleAdmin, model.RoleCashier}
	billing      = []model.Role{model.RoleAdmin, model.RoleWaiter, model.RoleCashier}
	kitchen      = []model.Role{model.RoleAdmin, model.RoleChef}
)

var permissions = buildTable(map[Operation][]model.Role{
	OpUserList:       adminOnly,
	OpUserGet:        adminOnly,
	OpUserCreate:     adminOnly,
	OpUserUpdate:     adminOnly,
	OpUserDelete:     adminOnly,
	OpUserDeactivate: adminOnly,
	OpUserProfile:    everyone,

	OpTableRead:    everyone,
	OpTableCreate:  adminOnly,
	OpTableUpdate:  adminOnly,
	OpTableDelete:  adminOnly,
	OpTableOpen:    floorStaff,
	OpTableClose:   floorStaff,
	OpTableReserve: floorStaff,

	OpMenuRead:  everyone,
	OpMenuWrite: adminOnly,

	OpOrderRead:         everyone,
	OpOrderCreate:       floorStaff,
	OpOrderUpdate:       kitchenFloor,
	OpOrderUpdateStatus: kitchenFloor,
	OpOrderDelete:       adminOnly,

	OpPaymentRead:    till,
	OpPaymentCreate:  till,
	OpPaymentUpdate:  till,
	OpPaymentProcess: till,
	OpPaymentRefund:  till,
	OpPaymentDelete:  adminOnly,
	OpTableBill:      billing,

	OpInventoryRead:  kitchen,
	OpInventoryWrite: adminOnly,
	OpInventoryStock: kitchen,

	OpReportRead:     adminOnly,
	OpReportGenerate: adminOnly,
})

type grant struct {
	role model.Role
	op   Operation
}

func buildTable(byOp map[Operation][]model.Role) map[grant]struct{} {
	table := make(map[grant]struct{})
	for op, roles := range byOp {
		for _, role := range roles {
			table[grant{role: role, op: op}] = struct{}{}
		}
	}
	return table
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(role model.Role, op Operation) bool {
	_, ok := permissions[grant{role: role, op: op}]
	return ok
}
