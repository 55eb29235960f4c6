package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// mockDB is the in-memory store shared by every mock repository, so a
// selection created through one repo is visible through another, mirroring
// the real database.
type mockDB struct {
	categories  map[uint]*model.Category
	departments map[uint]*model.Department
	members     map[uint]*model.Member
	selections  map[uint]*model.Selection
	appeals     map[uint]*model.Appeal
	settings    map[string]string

	nextCategoryID   uint
	nextDepartmentID uint
	nextMemberID     uint
	nextSelectionID  uint
	nextAppealID     uint
}

func newMockDB() *mockDB {
	return &mockDB{
		categories:  make(map[uint]*model.Category),
		departments: make(map[uint]*model.Department),
		members:     make(map[uint]*model.Member),
		selections:  make(map[uint]*model.Selection),
		appeals:     make(map[uint]*model.Appeal),
		settings:    make(map[string]string),
	}
}

func newMockRepository() (*repository.Repository, *mockDB) {
	db := newMockDB()
	return &repository.Repository{
		Category:   &mockCategoryRepo{db: db},
		Department: &mockDepartmentRepo{db: db},
		Member:     &mockMemberRepo{db: db},
		Selection:  &mockSelectionRepo{db: db},
		Appeal:     &mockAppealRepo{db: db},
		Setting:    &mockSettingRepo{db: db},
	}, db
}

// departmentWithCategory returns a copy with the Category preload attached.
func (db *mockDB) departmentWithCategory(id uint) (model.Department, bool) {
	d, ok := db.departments[id]
	if !ok {
		return model.Department{}, false
	}
	out := *d
	if d.CategoryID != nil {
		if cat, ok := db.categories[*d.CategoryID]; ok {
			c := *cat
			c.Departments = nil
			out.Category = &c
		}
	}
	return out, true
}

// selectionWithPreloads returns a copy with Member and Department attached.
func (db *mockDB) selectionWithPreloads(id uint) (model.Selection, bool) {
	s, ok := db.selections[id]
	if !ok {
		return model.Selection{}, false
	}
	out := *s
	if m, ok := db.members[s.MemberID]; ok {
		mc := *m
		mc.Selections = nil
		out.Member = &mc
	}
	if d, ok := db.departmentWithCategory(s.DepartmentID); ok {
		out.Department = &d
	}
	return out, true
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	db *mockDB
}

func (m *mockCategoryRepo) Create(_ context.Context, cat *model.Category) error {
	m.db.nextCategoryID++
	cat.ID = m.db.nextCategoryID
	cat.CreatedAt = time.Now()
	stored := *cat
	m.db.categories[cat.ID] = &stored
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uint) (*model.Category, error) {
	cat, ok := m.db.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *cat
	for _, d := range m.db.departments {
		if d.CategoryID != nil && *d.CategoryID == id {
			out.Departments = append(out.Departments, *d)
		}
	}
	sort.Slice(out.Departments, func(i, j int) bool { return out.Departments[i].Name < out.Departments[j].Name })
	return &out, nil
}

func (m *mockCategoryRepo) ListByIDs(_ context.Context, ids []uint) ([]model.Category, error) {
	var result []model.Category
	for _, id := range ids {
		if cat, ok := m.db.categories[id]; ok {
			result = append(result, *cat)
		}
	}
	return result, nil
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var result []model.Category
	for id := range m.db.categories {
		cat, _ := m.GetByID(ctx, id)
		result = append(result, *cat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, cat *model.Category) error {
	stored := *cat
	stored.Departments = nil
	m.db.categories[cat.ID] = &stored
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(m.db.categories, id)
	for _, d := range m.db.departments {
		if d.CategoryID != nil && *d.CategoryID == id {
			d.CategoryID = nil
		}
	}
	return nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	db *mockDB
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	m.db.nextDepartmentID++
	dept.ID = m.db.nextDepartmentID
	dept.CreatedAt = time.Now()
	stored := *dept
	stored.Category = nil
	m.db.departments[dept.ID] = &stored
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uint) (*model.Department, error) {
	d, ok := m.db.departmentWithCategory(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (m *mockDepartmentRepo) ListByIDs(_ context.Context, ids []uint) ([]model.Department, error) {
	var result []model.Department
	seen := make(map[uint]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if d, ok := m.db.departmentWithCategory(id); ok {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for id := range m.db.departments {
		d, _ := m.db.departmentWithCategory(id)
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDepartmentRepo) ListUncategorized(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.db.departments {
		if d.CategoryID == nil {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	stored := *dept
	stored.Category = nil
	m.db.departments[dept.ID] = &stored
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id uint) error {
	delete(m.db.departments, id)
	for sid, s := range m.db.selections {
		if s.DepartmentID == id {
			delete(m.db.selections, sid)
		}
	}
	return nil
}

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	db *mockDB
}

func (m *mockMemberRepo) CreateWithSelections(_ context.Context, member *model.Member, departmentIDs []uint) error {
	m.db.nextMemberID++
	member.ID = m.db.nextMemberID
	member.CreatedAt = time.Now()
	stored := *member
	stored.Selections = nil
	m.db.members[member.ID] = &stored
	for _, deptID := range departmentIDs {
		m.db.nextSelectionID++
		m.db.selections[m.db.nextSelectionID] = &model.Selection{
			ID:           m.db.nextSelectionID,
			MemberID:     member.ID,
			DepartmentID: deptID,
			Source:       model.SourceMember,
			CreatedAt:    time.Now(),
		}
	}
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id uint) (*model.Member, error) {
	member, ok := m.db.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *member
	for sid, s := range m.db.selections {
		if s.MemberID == id {
			sel, _ := m.db.selectionWithPreloads(sid)
			sel.Member = nil
			out.Selections = append(out.Selections, sel)
		}
	}
	sort.Slice(out.Selections, func(i, j int) bool { return out.Selections[i].ID < out.Selections[j].ID })
	return &out, nil
}

func (m *mockMemberRepo) List(ctx context.Context) ([]model.Member, error) {
	var result []model.Member
	for id := range m.db.members {
		member, _ := m.GetByID(ctx, id)
		result = append(result, *member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockMemberRepo) ListAll(_ context.Context) ([]model.Member, error) {
	var result []model.Member
	for _, member := range m.db.members {
		result = append(result, *member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockMemberRepo) GetByPhone(_ context.Context, phone string) (*model.Member, error) {
	var ids []uint
	for id := range m.db.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if m.db.members[id].Phone == phone {
			out := *m.db.members[id]
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	stored := *member
	stored.Selections = nil
	m.db.members[member.ID] = &stored
	return nil
}

func (m *mockMemberRepo) ReplaceSelections(_ context.Context, memberID uint, departmentIDs []uint) error {
	for sid, s := range m.db.selections {
		if s.MemberID == memberID {
			delete(m.db.selections, sid)
		}
	}
	for _, deptID := range departmentIDs {
		m.db.nextSelectionID++
		m.db.selections[m.db.nextSelectionID] = &model.Selection{
			ID:           m.db.nextSelectionID,
			MemberID:     memberID,
			DepartmentID: deptID,
			Source:       model.SourceMember,
			CreatedAt:    time.Now(),
		}
	}
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id uint) error {
	delete(m.db.members, id)
	for sid, s := range m.db.selections {
		if s.MemberID == id {
			delete(m.db.selections, sid)
		}
	}
	return nil
}

func (m *mockMemberRepo) PurgeAll(_ context.Context) (int64, error) {
	count := int64(len(m.db.members))
	m.db.members = make(map[uint]*model.Member)
	m.db.selections = make(map[uint]*model.Selection)
	return count, nil
}

// ── Mock SelectionRepository ──

type mockSelectionRepo struct {
	db *mockDB
}

func (m *mockSelectionRepo) Create(_ context.Context, sel *model.Selection) error {
	m.db.nextSelectionID++
	sel.ID = m.db.nextSelectionID
	sel.CreatedAt = time.Now()
	stored := *sel
	stored.Member = nil
	stored.Department = nil
	m.db.selections[sel.ID] = &stored
	return nil
}

func (m *mockSelectionRepo) GetByID(_ context.Context, id uint) (*model.Selection, error) {
	sel, ok := m.db.selectionWithPreloads(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sel, nil
}

func (m *mockSelectionRepo) listWhere(keep func(*model.Selection) bool) []model.Selection {
	var ids []uint
	for id, s := range m.db.selections {
		if keep(s) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]model.Selection, 0, len(ids))
	for _, id := range ids {
		sel, _ := m.db.selectionWithPreloads(id)
		result = append(result, sel)
	}
	return result
}

func (m *mockSelectionRepo) ListByMember(_ context.Context, memberID uint) ([]model.Selection, error) {
	return m.listWhere(func(s *model.Selection) bool { return s.MemberID == memberID }), nil
}

func (m *mockSelectionRepo) ListByDepartment(_ context.Context, departmentID uint) ([]model.Selection, error) {
	return m.listWhere(func(s *model.Selection) bool { return s.DepartmentID == departmentID }), nil
}

func (m *mockSelectionRepo) ListPending(_ context.Context) ([]model.Selection, error) {
	return m.listWhere(func(s *model.Selection) bool {
		return s.Status == nil || *s.Status == model.StatusPending
	}), nil
}

func (m *mockSelectionRepo) ListApproved(_ context.Context) ([]model.Selection, error) {
	return m.listWhere(func(s *model.Selection) bool {
		return s.Status != nil && *s.Status == model.StatusApproved
	}), nil
}

func (m *mockSelectionRepo) ExistsPair(_ context.Context, memberID, departmentID uint) (bool, error) {
	for _, s := range m.db.selections {
		if s.MemberID == memberID && s.DepartmentID == departmentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSelectionRepo) GetApprovedPair(_ context.Context, memberID, departmentID uint) (*model.Selection, error) {
	for _, s := range m.db.selections {
		if s.MemberID == memberID && s.DepartmentID == departmentID &&
			s.Status != nil && *s.Status == model.StatusApproved {
			out := *s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSelectionRepo) Update(_ context.Context, sel *model.Selection) error {
	stored := *sel
	stored.Member = nil
	stored.Department = nil
	m.db.selections[sel.ID] = &stored
	return nil
}

func (m *mockSelectionRepo) Replace(ctx context.Context, original, replacement *model.Selection) error {
	if err := m.Create(ctx, replacement); err != nil {
		return err
	}
	original.ReplacedByID = &replacement.ID
	return m.Update(ctx, original)
}

func (m *mockSelectionRepo) BulkApprove(_ context.Context, at time.Time) (int64, error) {
	var count int64
	for _, s := range m.db.selections {
		if s.Status == nil || *s.Status == model.StatusPending {
			approved := model.StatusApproved
			s.Status = &approved
			changed := at
			s.StatusChangedAt = &changed
			count++
		}
	}
	return count, nil
}

func (m *mockSelectionRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, s := range m.db.selections {
		if s.Status != nil && *s.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockSelectionRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, s := range m.db.selections {
		if s.Status == nil || *s.Status == model.StatusPending {
			count++
		}
	}
	return count, nil
}

// ── Mock AppealRepository ──

type mockAppealRepo struct {
	db *mockDB
}

func (m *mockAppealRepo) Create(_ context.Context, appeal *model.Appeal) error {
	m.db.nextAppealID++
	appeal.ID = m.db.nextAppealID
	appeal.CreatedAt = time.Now()
	stored := *appeal
	stored.Member = nil
	stored.UnwantedDepartment = nil
	stored.WantedDepartment = nil
	m.db.appeals[appeal.ID] = &stored
	return nil
}

func (m *mockAppealRepo) GetByID(_ context.Context, id uint) (*model.Appeal, error) {
	appeal, ok := m.db.appeals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *appeal
	if member, ok := m.db.members[appeal.MemberID]; ok {
		mc := *member
		out.Member = &mc
	}
	if appeal.UnwantedDepartmentID != nil {
		if d, ok := m.db.departments[*appeal.UnwantedDepartmentID]; ok {
			dc := *d
			out.UnwantedDepartment = &dc
		}
	}
	if appeal.WantedDepartmentID != nil {
		if d, ok := m.db.departments[*appeal.WantedDepartmentID]; ok {
			dc := *d
			out.WantedDepartment = &dc
		}
	}
	return &out, nil
}

func (m *mockAppealRepo) List(ctx context.Context, status string) ([]model.Appeal, error) {
	var ids []uint
	for id, a := range m.db.appeals {
		if status == "" || a.Status == status {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	result := make([]model.Appeal, 0, len(ids))
	for _, id := range ids {
		appeal, _ := m.GetByID(ctx, id)
		result = append(result, *appeal)
	}
	return result, nil
}

func (m *mockAppealRepo) Update(_ context.Context, appeal *model.Appeal) error {
	stored := *appeal
	stored.Member = nil
	stored.UnwantedDepartment = nil
	stored.WantedDepartment = nil
	m.db.appeals[appeal.ID] = &stored
	return nil
}

func (m *mockAppealRepo) Resolve(ctx context.Context, appeal *model.Appeal, updates, creates []*model.Selection) error {
	for _, sel := range updates {
		stored := *sel
		stored.Member = nil
		stored.Department = nil
		m.db.selections[sel.ID] = &stored
	}
	for _, sel := range creates {
		m.db.nextSelectionID++
		sel.ID = m.db.nextSelectionID
		sel.CreatedAt = time.Now()
		stored := *sel
		stored.Member = nil
		stored.Department = nil
		m.db.selections[sel.ID] = &stored
	}
	return m.Update(ctx, appeal)
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	db *mockDB
}

func (m *mockSettingRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	value, ok := m.db.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (m *mockSettingRepo) GetAll(_ context.Context) ([]model.Setting, error) {
	var result []model.Setting
	for k, v := range m.db.settings {
		result = append(result, model.Setting{Key: k, Value: v})
	}
	return result, nil
}

func (m *mockSettingRepo) Upsert(_ context.Context, key, value string) error {
	m.db.settings[key] = value
	return nil
}

func (m *mockSettingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.db.settings)), nil
}
