package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

// ── shared helpers ──

var errUnique = &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

type idSeq struct {
	prefix string
	n      int
}

func (s *idSeq) next() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// mocks bundles every mock so tests can seed and inspect state.
type mocks struct {
	employees *mockEmployeeRepo
	settings  *mockStoreSettingRepo
	refs      *mockReferenceRepo
	shifts    *mockShiftRepo
	timeOff   *mockTimeOffRepo
	duties    *mockDutyRepo
	audits    *mockAuditRepo
	rules     *mockPointRuleRepo
	sales     *mockSalesRepo
	orders    *mockOrderRepo
	chat      *mockChatRepo
	waivers   *mockWaiverRepo
	holidays  *mockHolidayRepo
	dros      *mockDrosRepo
	acqs      *mockAcquisitionRepo
}

func newMocks() (*mocks, *repository.Repository) {
	m := &mocks{
		employees: newMockEmployeeRepo(),
		settings:  &mockStoreSettingRepo{setting: defaultSettings()},
		refs:      &mockReferenceRepo{},
		shifts:    &mockShiftRepo{ids: idSeq{prefix: "shift"}},
		timeOff:   &mockTimeOffRepo{rows: map[string]*model.TimeOffRequest{}, ids: idSeq{prefix: "tor"}},
		duties:    &mockDutyRepo{ids: idSeq{prefix: "duty"}},
		audits:    &mockAuditRepo{ids: idSeq{prefix: "audit"}},
		rules:     &mockPointRuleRepo{},
		sales:     &mockSalesRepo{},
		orders:    &mockOrderRepo{rows: map[string]*model.SpecialOrder{}, ids: idSeq{prefix: "order"}},
		chat:      &mockChatRepo{msgIDs: idSeq{prefix: "msg"}, groupIDs: idSeq{prefix: "group"}},
		waivers:   &mockWaiverRepo{rows: map[string]*model.Waiver{}, ids: idSeq{prefix: "waiver"}},
		holidays:  &mockHolidayRepo{ids: idSeq{prefix: "holiday"}},
		dros:      &mockDrosRepo{rows: map[string]*model.DrosRecord{}, ids: idSeq{prefix: "dros"}},
		acqs:      &mockAcquisitionRepo{},
	}
	m.refs.emps = m.employees
	m.timeOff.shifts = m.shifts
	repo := &repository.Repository{
		Employee:          m.employees,
		StoreSetting:      m.settings,
		ReferenceSchedule: m.refs,
		Shift:             m.shifts,
		TimeOff:           m.timeOff,
		BreakRoomDuty:     m.duties,
		Audit:             m.audits,
		PointRule:         m.rules,
		Sales:             m.sales,
		Order:             m.orders,
		Chat:              m.chat,
		Waiver:            m.waivers,
		Holiday:           m.holidays,
		Dros:              m.dros,
		Acquisition:       m.acqs,
	}
	return m, repo
}

func defaultSettings() *model.StoreSetting {
	return &model.StoreSetting{
		Singleton:                  true,
		DrosQualificationThreshold: 20,
		ExcludedDepartment:         "Operations",
		StartingPoints:             300,
		DutyDepartment:             "Sales",
		DutyPreferredWeekday:       5,
	}
}

// ── recording publisher ──

type publishedEvent struct {
	evt    realtime.Event
	topics []string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt realtime.Event, topics ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{evt: evt, topics: topics})
}

func (p *recordingPublisher) last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return publishedEvent{}
	}
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	rows   map[int]*model.Employee
	nextID int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{rows: make(map[int]*model.Employee), nextID: 1}
}

// add seeds an active employee with the given id.
func (m *mockEmployeeRepo) add(id int, name, department, lanid string) *model.Employee {
	e := &model.Employee{
		EmployeeID: id,
		Name:       name,
		Email:      strings.ToLower(name) + "@example.com",
		Department: department,
		Role:       model.RoleEmployee,
		Status:     model.EmployeeActive,
	}
	if lanid != "" {
		e.Lanid = &lanid
	}
	m.rows[id] = e
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return e
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	for _, e := range m.rows {
		if e.Email == emp.Email {
			return errUnique
		}
		if emp.Lanid != nil && e.Lanid != nil && *e.Lanid == *emp.Lanid {
			return errUnique
		}
	}
	if emp.EmployeeID == 0 {
		emp.EmployeeID = m.nextID
		m.nextID++
	}
	m.rows[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id int) (*model.Employee, error) {
	if e, ok := m.rows[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.rows {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.rows[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) sorted(keep func(*model.Employee) bool) []model.Employee {
	var list []model.Employee
	for _, e := range m.rows {
		if keep(e) {
			list = append(list, *e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EmployeeID < list[j].EmployeeID })
	return list
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter, offset, limit int) ([]model.Employee, int64, error) {
	all := m.sorted(func(e *model.Employee) bool {
		if filter.Department != "" && e.Department != filter.Department {
			return false
		}
		if filter.Status != "" && e.Status != filter.Status {
			return false
		}
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(e.FullName()), strings.ToLower(filter.Keyword)) {
			return false
		}
		return true
	})
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockEmployeeRepo) ListActiveByDepartment(_ context.Context, department string) ([]model.Employee, error) {
	return m.sorted(func(e *model.Employee) bool {
		return e.Status == model.EmployeeActive && e.Department == department
	}), nil
}

func (m *mockEmployeeRepo) ListActive(_ context.Context) ([]model.Employee, error) {
	return m.sorted(func(e *model.Employee) bool { return e.Status == model.EmployeeActive }), nil
}

func (m *mockEmployeeRepo) ListWithLanid(_ context.Context) ([]model.Employee, error) {
	return m.sorted(func(e *model.Employee) bool { return e.Lanid != nil }), nil
}

// ── Mock StoreSettingRepository ──

type mockStoreSettingRepo struct {
	setting *model.StoreSetting
}

func (m *mockStoreSettingRepo) Get(_ context.Context) (*model.StoreSetting, error) {
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.setting
	return &cp, nil
}

func (m *mockStoreSettingRepo) Update(_ context.Context, s *model.StoreSetting) error {
	cp := *s
	m.setting = &cp
	return nil
}

// ── Mock ReferenceScheduleRepository ──

type mockReferenceRepo struct {
	rows []model.ReferenceSchedule
	emps *mockEmployeeRepo
}

func (m *mockReferenceRepo) ListByEmployee(_ context.Context, employeeID int) ([]model.ReferenceSchedule, error) {
	var list []model.ReferenceSchedule
	for _, r := range m.rows {
		if r.EmployeeID == employeeID {
			list = append(list, r)
		}
	}
	return list, nil
}

func (m *mockReferenceRepo) ListForActiveEmployees(_ context.Context) ([]model.ReferenceSchedule, error) {
	var list []model.ReferenceSchedule
	for _, r := range m.rows {
		if r.StartTime == nil || r.EndTime == nil {
			continue
		}
		if m.emps != nil {
			if e, ok := m.emps.rows[r.EmployeeID]; !ok || e.Status != model.EmployeeActive {
				continue
			}
		}
		list = append(list, r)
	}
	return list, nil
}

func (m *mockReferenceRepo) Upsert(_ context.Context, ref *model.ReferenceSchedule) error {
	for i := range m.rows {
		if m.rows[i].EmployeeID == ref.EmployeeID && m.rows[i].DayOfWeek == ref.DayOfWeek {
			ref.ReferenceID = m.rows[i].ReferenceID
			m.rows[i] = *ref
			return nil
		}
	}
	if ref.ReferenceID == "" {
		ref.ReferenceID = fmt.Sprintf("ref-%d-%d", ref.EmployeeID, ref.DayOfWeek)
	}
	m.rows = append(m.rows, *ref)
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	rows []*model.Shift
	ids  idSeq
}

func (m *mockShiftRepo) find(employeeID int, d time.Time) *model.Shift {
	for _, s := range m.rows {
		if s.EmployeeID == employeeID && s.ScheduleDate.Equal(d) {
			return s
		}
	}
	return nil
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if m.find(shift.EmployeeID, shift.ScheduleDate) != nil {
		return errUnique
	}
	if shift.ScheduleID == "" {
		shift.ScheduleID = m.ids.next()
	}
	m.rows = append(m.rows, shift)
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	for _, s := range m.rows {
		if s.ScheduleID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	for i, s := range m.rows {
		if s.ScheduleID == shift.ScheduleID {
			m.rows[i] = shift
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListRange(_ context.Context, start, end time.Time, employeeID int) ([]model.Shift, error) {
	var list []model.Shift
	for _, s := range m.rows {
		if s.ScheduleDate.Before(start) || s.ScheduleDate.After(end) {
			continue
		}
		if employeeID > 0 && s.EmployeeID != employeeID {
			continue
		}
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ScheduleDate.Equal(list[j].ScheduleDate) {
			return list[i].ScheduleDate.Before(list[j].ScheduleDate)
		}
		return list[i].EmployeeID < list[j].EmployeeID
	})
	return list, nil
}

func (m *mockShiftRepo) InsertMissing(_ context.Context, shifts []model.Shift) (int64, error) {
	var n int64
	for i := range shifts {
		if m.find(shifts[i].EmployeeID, shifts[i].ScheduleDate) != nil {
			continue
		}
		s := shifts[i]
		s.ScheduleID = m.ids.next()
		m.rows = append(m.rows, &s)
		n++
	}
	return n, nil
}

func (m *mockShiftRepo) MarkTimeOff(_ context.Context, employeeID int, start, end time.Time, by int) (int64, error) {
	var n int64
	for _, s := range m.rows {
		if s.EmployeeID != employeeID || s.ScheduleDate.Before(start) || s.ScheduleDate.After(end) {
			continue
		}
		s.Status = model.ShiftTimeOff
		s.UpdatedBy = &by
		n++
	}
	return n, nil
}

// ── Mock TimeOffRepository ──

type mockTimeOffRepo struct {
	rows   map[string]*model.TimeOffRequest
	ids    idSeq
	shifts *mockShiftRepo
	// approveErr fails ApproveAndMark before anything is written
	approveErr error
}

func (m *mockTimeOffRepo) Create(_ context.Context, req *model.TimeOffRequest) error {
	if req.RequestID == "" {
		req.RequestID = m.ids.next()
	}
	if req.Version == 0 {
		req.Version = 1
	}
	m.rows[req.RequestID] = req
	return nil
}

func (m *mockTimeOffRepo) GetByID(_ context.Context, id string) (*model.TimeOffRequest, error) {
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeOffRepo) List(_ context.Context, employeeID int, status string, offset, limit int) ([]model.TimeOffRequest, int64, error) {
	var all []model.TimeOffRequest
	for _, r := range m.rows {
		if employeeID > 0 && r.EmployeeID != employeeID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RequestID < all[j].RequestID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockTimeOffRepo) UpdateReview(_ context.Context, req *model.TimeOffRequest) error {
	stored, ok := m.rows[req.RequestID]
	if !ok || stored.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version++
	cp := *req
	m.rows[req.RequestID] = &cp
	return nil
}

func (m *mockTimeOffRepo) ApproveAndMark(ctx context.Context, req *model.TimeOffRequest, by int) (int64, error) {
	if m.approveErr != nil {
		return 0, m.approveErr
	}
	if err := m.UpdateReview(ctx, req); err != nil {
		return 0, err
	}
	return m.shifts.MarkTimeOff(ctx, req.EmployeeID, req.StartDate, req.EndDate, by)
}

// ── Mock BreakRoomDutyRepository ──

type mockDutyRepo struct {
	rows []*model.BreakRoomDuty
	ids  idSeq
}

func (m *mockDutyRepo) Create(_ context.Context, duty *model.BreakRoomDuty) error {
	for _, d := range m.rows {
		if d.WeekStart.Equal(duty.WeekStart) {
			return errUnique
		}
	}
	if duty.DutyID == "" {
		duty.DutyID = m.ids.next()
	}
	m.rows = append(m.rows, duty)
	return nil
}

func (m *mockDutyRepo) GetByID(_ context.Context, id string) (*model.BreakRoomDuty, error) {
	for _, d := range m.rows {
		if d.DutyID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDutyRepo) GetByWeek(_ context.Context, weekStart time.Time) (*model.BreakRoomDuty, error) {
	for _, d := range m.rows {
		if d.WeekStart.Equal(weekStart) {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDutyRepo) GetLatest(_ context.Context) (*model.BreakRoomDuty, error) {
	var latest *model.BreakRoomDuty
	for _, d := range m.rows {
		if latest == nil || d.WeekStart.After(latest.WeekStart) {
			latest = d
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockDutyRepo) List(_ context.Context, employeeID int, offset, limit int) ([]model.BreakRoomDuty, int64, error) {
	var all []model.BreakRoomDuty
	for _, d := range m.rows {
		if employeeID > 0 && d.EmployeeID != employeeID {
			continue
		}
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].WeekStart.After(all[j].WeekStart) })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockDutyRepo) MarkCompleted(_ context.Context, duty *model.BreakRoomDuty) error {
	for i, d := range m.rows {
		if d.DutyID == duty.DutyID {
			m.rows[i] = duty
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AuditRepository / PointRuleRepository ──

type mockAuditRepo struct {
	rows []model.Audit
	ids  idSeq
}

func (m *mockAuditRepo) BatchCreate(_ context.Context, audits []model.Audit) error {
	for i := range audits {
		audits[i].AuditID = m.ids.next()
		m.rows = append(m.rows, audits[i])
	}
	return nil
}

func (m *mockAuditRepo) GetByID(_ context.Context, id string) (*model.Audit, error) {
	for i := range m.rows {
		if m.rows[i].AuditID == id {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAuditRepo) List(_ context.Context, filter repository.AuditFilter, offset, limit int) ([]model.Audit, int64, error) {
	var all []model.Audit
	for _, a := range m.rows {
		if filter.Lanid != "" && a.Lanid != filter.Lanid {
			continue
		}
		if filter.Start != nil && a.TransDate.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && a.TransDate.After(*filter.End) {
			continue
		}
		all = append(all, a)
	}
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockAuditRepo) ListByTransDate(_ context.Context, start, end time.Time) ([]model.Audit, error) {
	var list []model.Audit
	for _, a := range m.rows {
		if !a.TransDate.Before(start) && !a.TransDate.After(end) {
			list = append(list, a)
		}
	}
	return list, nil
}

func (m *mockAuditRepo) Delete(_ context.Context, id string, _ int) error {
	for i := range m.rows {
		if m.rows[i].AuditID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockPointRuleRepo struct {
	rows []model.PointRule
}

func (m *mockPointRuleRepo) List(_ context.Context) ([]model.PointRule, error) {
	return append([]model.PointRule(nil), m.rows...), nil
}

func (m *mockPointRuleRepo) Upsert(_ context.Context, rule *model.PointRule) error {
	for i := range m.rows {
		if m.rows[i].ErrorLocation == rule.ErrorLocation {
			rule.RuleID = m.rows[i].RuleID
			m.rows[i] = *rule
			return nil
		}
	}
	if rule.RuleID == "" {
		rule.RuleID = "rule-" + rule.ErrorLocation
	}
	m.rows = append(m.rows, *rule)
	return nil
}

// ── Mock SalesRepository ──

type mockSalesRepo struct {
	rows []model.SalesRecord
}

func (m *mockSalesRepo) BatchCreate(_ context.Context, rows []model.SalesRecord) error {
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *mockSalesRepo) List(_ context.Context, filter repository.SalesFilter, offset, limit int) ([]model.SalesRecord, int64, error) {
	var all []model.SalesRecord
	for _, s := range m.rows {
		if filter.Lanid != "" && s.Lanid != filter.Lanid {
			continue
		}
		all = append(all, s)
	}
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockSalesRepo) ListBySaleDate(_ context.Context, start, end time.Time) ([]model.SalesRecord, error) {
	var list []model.SalesRecord
	for _, s := range m.rows {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			list = append(list, s)
		}
	}
	return list, nil
}

// ── Mock OrderRepository ──

type mockOrderRepo struct {
	rows map[string]*model.SpecialOrder
	ids  idSeq
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.SpecialOrder) error {
	if order.OrderID == "" {
		order.OrderID = m.ids.next()
	}
	cp := *order
	m.rows[order.OrderID] = &cp
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.SpecialOrder, error) {
	if o, ok := m.rows[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) List(_ context.Context, status string, offset, limit int) ([]model.SpecialOrder, int64, error) {
	var all []model.SpecialOrder
	for _, o := range m.rows {
		if status == "" || o.Status == status {
			all = append(all, *o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderID < all[j].OrderID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, order *model.SpecialOrder) error {
	stored, ok := m.rows[order.OrderID]
	if !ok || stored.Version != order.Version {
		return pkgerrors.ErrOptimisticLock
	}
	order.Version++
	cp := *order
	m.rows[order.OrderID] = &cp
	return nil
}

// ── Mock ChatRepository ──

type mockChatRepo struct {
	msgs     []model.ChatMessage
	groups   []model.ChatGroup
	msgIDs   idSeq
	groupIDs idSeq
	clock    time.Time
}

func (m *mockChatRepo) CreateMessage(_ context.Context, msg *model.ChatMessage) error {
	if m.clock.IsZero() {
		m.clock = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	m.clock = m.clock.Add(time.Minute)
	msg.MessageID = m.msgIDs.next()
	msg.CreatedAt = m.clock
	m.msgs = append(m.msgs, *msg)
	return nil
}

func newestFirst(msgs []model.ChatMessage, before *time.Time, limit int) []model.ChatMessage {
	var list []model.ChatMessage
	for i := len(msgs) - 1; i >= 0 && len(list) < limit; i-- {
		if before != nil && !msgs[i].CreatedAt.Before(*before) {
			continue
		}
		list = append(list, msgs[i])
	}
	return list
}

func (m *mockChatRepo) Conversation(_ context.Context, a, b int, before *time.Time, limit int) ([]model.ChatMessage, error) {
	var pair []model.ChatMessage
	for _, msg := range m.msgs {
		if msg.ReceiverID == nil {
			continue
		}
		if (msg.SenderID == a && *msg.ReceiverID == b) || (msg.SenderID == b && *msg.ReceiverID == a) {
			pair = append(pair, msg)
		}
	}
	return newestFirst(pair, before, limit), nil
}

func (m *mockChatRepo) GroupHistory(_ context.Context, groupID string, before *time.Time, limit int) ([]model.ChatMessage, error) {
	var in []model.ChatMessage
	for _, msg := range m.msgs {
		if msg.GroupID != nil && *msg.GroupID == groupID {
			in = append(in, msg)
		}
	}
	return newestFirst(in, before, limit), nil
}

func (m *mockChatRepo) MarkRead(_ context.Context, receiverID, senderID int) (int64, error) {
	var n int64
	for i := range m.msgs {
		msg := &m.msgs[i]
		if msg.ReceiverID != nil && *msg.ReceiverID == receiverID && msg.SenderID == senderID && !msg.IsRead {
			msg.IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *mockChatRepo) UnreadCounts(_ context.Context, receiverID int) ([]repository.UnreadCount, error) {
	counts := map[int]int64{}
	for _, msg := range m.msgs {
		if msg.ReceiverID != nil && *msg.ReceiverID == receiverID && !msg.IsRead {
			counts[msg.SenderID]++
		}
	}
	var list []repository.UnreadCount
	for id, n := range counts {
		list = append(list, repository.UnreadCount{SenderID: id, Count: n})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SenderID < list[j].SenderID })
	return list, nil
}

func (m *mockChatRepo) CreateGroup(_ context.Context, group *model.ChatGroup) error {
	group.GroupID = m.groupIDs.next()
	m.groups = append(m.groups, *group)
	return nil
}

func (m *mockChatRepo) GetGroup(_ context.Context, id string) (*model.ChatGroup, error) {
	for i := range m.groups {
		if m.groups[i].GroupID == id {
			cp := m.groups[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChatRepo) ListGroupsForMember(_ context.Context, employeeID int) ([]model.ChatGroup, error) {
	var list []model.ChatGroup
	for _, g := range m.groups {
		if g.MemberIDs.Contains(employeeID) {
			list = append(list, g)
		}
	}
	return list, nil
}

// ── Mock WaiverRepository ──

type mockWaiverRepo struct {
	rows map[string]*model.Waiver
	ids  idSeq
}

func (m *mockWaiverRepo) Create(_ context.Context, w *model.Waiver) error {
	w.WaiverID = m.ids.next()
	cp := *w
	m.rows[w.WaiverID] = &cp
	return nil
}

func (m *mockWaiverRepo) GetByID(_ context.Context, id string) (*model.Waiver, error) {
	if w, ok := m.rows[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWaiverRepo) ListByVisitDate(_ context.Context, date time.Time, status string) ([]model.Waiver, error) {
	var list []model.Waiver
	for _, w := range m.rows {
		if w.VisitDate.Equal(date) && (status == "" || w.Status == status) {
			list = append(list, *w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WaiverID < list[j].WaiverID })
	return list, nil
}

func (m *mockWaiverRepo) CheckOut(_ context.Context, w *model.Waiver) error {
	cp := *w
	m.rows[w.WaiverID] = &cp
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	rows []model.Holiday
	ids  idSeq
}

func (m *mockHolidayRepo) Create(_ context.Context, h *model.Holiday) error {
	for _, x := range m.rows {
		if x.HolidayDate.Equal(h.HolidayDate) {
			return errUnique
		}
	}
	h.HolidayID = m.ids.next()
	m.rows = append(m.rows, *h)
	return nil
}

func (m *mockHolidayRepo) CreateIfAbsent(ctx context.Context, h *model.Holiday) (bool, error) {
	if err := m.Create(ctx, h); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	for i := range m.rows {
		if m.rows[i].HolidayID == id {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) List(_ context.Context, year int) ([]model.Holiday, error) {
	var list []model.Holiday
	for _, h := range m.rows {
		if year == 0 || h.HolidayDate.Year() == year || h.RepeatYearly {
			list = append(list, h)
		}
	}
	return list, nil
}

func (m *mockHolidayRepo) ListClosed(_ context.Context) ([]model.Holiday, error) {
	var list []model.Holiday
	for _, h := range m.rows {
		if h.IsClosed {
			list = append(list, h)
		}
	}
	return list, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	for i := range m.rows {
		if m.rows[i].HolidayID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock DrosRepository ──

type mockDrosRepo struct {
	rows map[string]*model.DrosRecord
	ids  idSeq
}

func (m *mockDrosRepo) Create(_ context.Context, rec *model.DrosRecord) error {
	for _, r := range m.rows {
		if r.DrosNumber == rec.DrosNumber {
			return errUnique
		}
	}
	rec.DrosID = m.ids.next()
	cp := *rec
	m.rows[rec.DrosID] = &cp
	return nil
}

func (m *mockDrosRepo) GetByID(_ context.Context, id string) (*model.DrosRecord, error) {
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDrosRepo) List(_ context.Context, filter repository.DrosFilter, offset, limit int) ([]model.DrosRecord, int64, error) {
	var all []model.DrosRecord
	for _, r := range m.rows {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Start != nil && r.SubmittedAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && !r.SubmittedAt.Before(*filter.End) {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SubmittedAt.After(all[j].SubmittedAt) })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockDrosRepo) UpdateStatus(_ context.Context, rec *model.DrosRecord) error {
	stored, ok := m.rows[rec.DrosID]
	if !ok || stored.Version != rec.Version {
		return pkgerrors.ErrOptimisticLock
	}
	rec.Version++
	cp := *rec
	m.rows[rec.DrosID] = &cp
	return nil
}

// ── Mock AcquisitionRepository ──

type mockAcquisitionRepo struct {
	rows []model.Acquisition
}

func (m *mockAcquisitionRepo) Create(_ context.Context, a *model.Acquisition) error {
	a.AcquisitionID = fmt.Sprintf("acq-%d", len(m.rows)+1)
	m.rows = append(m.rows, *a)
	return nil
}

func (m *mockAcquisitionRepo) List(_ context.Context, offset, limit int) ([]model.Acquisition, int64, error) {
	return page(m.rows, offset, limit), int64(len(m.rows)), nil
}
