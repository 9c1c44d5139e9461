// Package models contains the GORM persistence models of the ShopDesk
// tables. Domain types carry no ORM tags; each model converts to and from
// its domain type with ToDomain and a ModelFromDomain constructor.
package models
