package repository

import "gorm.io/gorm"

// Repository aggregates every repository.
type Repository struct {
	Employee          EmployeeRepository
	StoreSetting      StoreSettingRepository
	ReferenceSchedule ReferenceScheduleRepository
	Shift             ShiftRepository
	TimeOff           TimeOffRepository
	BreakRoomDuty     BreakRoomDutyRepository
	Audit             AuditRepository
	PointRule         PointRuleRepository
	Sales             SalesRepository
	Order             OrderRepository
	Chat              ChatRepository
	Waiver            WaiverRepository
	Holiday           HolidayRepository
	Dros              DrosRepository
	Acquisition       AcquisitionRepository
}

// NewRepository builds every repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee:          NewEmployeeRepo(db),
		StoreSetting:      NewStoreSettingRepo(db),
		ReferenceSchedule: NewReferenceScheduleRepo(db),
		Shift:             NewShiftRepo(db),
		TimeOff:           NewTimeOffRepo(db),
		BreakRoomDuty:     NewBreakRoomDutyRepo(db),
		Audit:             NewAuditRepo(db),
		PointRule:         NewPointRuleRepo(db),
		Sales:             NewSalesRepo(db),
		Order:             NewOrderRepo(db),
		Chat:              NewChatRepo(db),
		Waiver:            NewWaiverRepo(db),
		Holiday:           NewHolidayRepo(db),
		Dros:              NewDrosRepo(db),
		Acquisition:       NewAcquisitionRepo(db),
	}
}
