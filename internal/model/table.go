package model

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableClosed    TableStatus = "closed"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableClosed:
		return true
	}
	return false
}

type Table struct {
	BaseModel
	TableNumber int         `db:"table_number" json:"tableNumber"`
	Capacity    int         `db:"capacity" json:"capacity"`
	Status      TableStatus `db:"status" json:"status"`
	Location    *string     `db:"location" json:"location"`
}
