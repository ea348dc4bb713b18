package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema and, on Postgres, the exclusion constraint
// that makes double-booking impossible at insert time. A concurrent insert
// for the same staff member with an overlapping non-cancelled interval fails
// atomically instead of silently winning a read-then-write race.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&salonModel{},
		&staffModel{},
		&staffScheduleModel{},
		&staffBlockModel{},
		&serviceModel{},
		&bookingModel{},
		&paymentModel{},
		&refundModel{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(`
DO $$ BEGIN
  ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
    EXCLUDE USING gist (
      staff_id WITH =,
      tstzrange(start_at, end_at, '[)') WITH &&
    ) WHERE (status <> 'cancelled');
EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
END $$`).Error
}
