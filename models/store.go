package models

// Store is a physical store. ManagerID references Users.userID.
type Store struct {
	ID              int64   `db:"storeID" json:"id"`
	Name            string  `db:"name" json:"name"`
	Latitude        float64 `db:"latitude" json:"latitude"`
	Longitude       float64 `db:"longitude" json:"longitude"`
	ManagerID       int64   `db:"managerID" json:"manager_id"`
	DateEstablished string  `db:"dateEstablished" json:"date_established"`
}

// StoreDistance pairs a store with its distance from the caller.
type StoreDistance struct {
	Store
	Distance float64 `json:"distance"`
}
