package dto

import "github.com/fekuna/omnipos-restaurant-service/internal/model"

type TableFilters struct {
	Status   *model.TableStatus
	Page     int
	PageSize int
}
