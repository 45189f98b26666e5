package models

// Account maps a caller address to its registered profile. The ID is
// assigned from the accounts counter, never by the database, so ids of
// deleted accounts are never handed out again.
type Account struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Address string `gorm:"uniqueIndex;not null" json:"address"`
	Details string `gorm:"not null" json:"details"`
}

type Product struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Seller   string  `gorm:"index;not null" json:"seller"`
	Details  string  `gorm:"not null" json:"details"`
	Price    float64 `gorm:"not null" json:"price"`
	Featured bool    `gorm:"default:false" json:"featured"`
}

// Cart is keyed by the buyer address, so the one-entry-per-buyer rule
// also holds at the storage level.
type Cart struct {
	Buyer   string `gorm:"primaryKey" json:"buyer"`
	Details string `gorm:"not null" json:"details"`
}

// Counter backs sequential id assignment per entity type. A counter
// value is never decremented, so ids are never reused.
type Counter struct {
	Name  string `gorm:"primaryKey"`
	Value uint   `gorm:"not null"`
}
