package schema

import (
	"gorm.io/gorm"
)

// Migrate runs GORM AutoMigrate to create or update the table of
// occurrence records, then creates its indexes.
func Migrate(db *gorm.DB, table string) error {
	err := db.Table(table).AutoMigrate(&Record{})
	if err != nil {
		return err
	}
	for _, v := range (Record{}).IndexDDL(table) {
		if err = db.Exec(v).Error; err != nil {
			return err
		}
	}
	return nil
}
