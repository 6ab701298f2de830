package services

import (
	"context"
	"io"

	"gcghub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// Function-field fakes for the repository interfaces. Unset lookup fields
// behave like an empty collection (mongo.ErrNoDocuments); unset count fields
// return zero.

type fakeYearRepo struct {
	CreateFn    func(ctx context.Context, year *models.Year) error
	GetByYearFn func(ctx context.Context, yearNumber int) (*models.Year, error)
	ListFn      func(ctx context.Context) ([]models.Year, error)
	UpdateFn    func(ctx context.Context, yearNumber int, year *models.Year) error
	DeleteFn    func(ctx context.Context, yearNumber int) error
}

func (f *fakeYearRepo) Create(ctx context.Context, year *models.Year) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, year)
}

func (f *fakeYearRepo) GetByYear(ctx context.Context, yearNumber int) (*models.Year, error) {
	if f.GetByYearFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByYearFn(ctx, yearNumber)
}

func (f *fakeYearRepo) List(ctx context.Context) ([]models.Year, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx)
}

func (f *fakeYearRepo) Update(ctx context.Context, yearNumber int, year *models.Year) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, yearNumber, year)
}

func (f *fakeYearRepo) Delete(ctx context.Context, yearNumber int) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, yearNumber)
}

type fakeAspectRepo struct {
	CreateFn         func(ctx context.Context, aspect *models.Aspect) error
	GetByIDFn        func(ctx context.Context, id primitive.ObjectID) (*models.Aspect, error)
	ListFn           func(ctx context.Context, filter models.AspectFilter) ([]models.Aspect, error)
	FindByNameYearFn func(ctx context.Context, name string, year int, excludeID *primitive.ObjectID) (*models.Aspect, error)
	UpdateFn         func(ctx context.Context, id primitive.ObjectID, aspect *models.Aspect) error
	DeleteFn         func(ctx context.Context, id primitive.ObjectID) error
	CountByYearFn    func(ctx context.Context, year int) (int64, error)
}

func (f *fakeAspectRepo) Create(ctx context.Context, aspect *models.Aspect) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, aspect)
}

func (f *fakeAspectRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Aspect, error) {
	if f.GetByIDFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeAspectRepo) List(ctx context.Context, filter models.AspectFilter) ([]models.Aspect, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeAspectRepo) FindByNameYear(ctx context.Context, name string, year int, excludeID *primitive.ObjectID) (*models.Aspect, error) {
	if f.FindByNameYearFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.FindByNameYearFn(ctx, name, year, excludeID)
}

func (f *fakeAspectRepo) Update(ctx context.Context, id primitive.ObjectID, aspect *models.Aspect) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, id, aspect)
}

func (f *fakeAspectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

func (f *fakeAspectRepo) CountByYear(ctx context.Context, year int) (int64, error) {
	if f.CountByYearFn == nil {
		return 0, nil
	}
	return f.CountByYearFn(ctx, year)
}

type fakeChecklistRepo struct {
	CreateFn        func(ctx context.Context, item *models.ChecklistItem) error
	GetByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error)
	ListFn          func(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error)
	UpdateFn        func(ctx context.Context, id primitive.ObjectID, item *models.ChecklistItem) error
	DeleteFn        func(ctx context.Context, id primitive.ObjectID) error
	CountByYearFn   func(ctx context.Context, year int) (int64, error)
	CountByAspectFn func(ctx context.Context, aspectName string, year int) (int64, error)
}

func (f *fakeChecklistRepo) Create(ctx context.Context, item *models.ChecklistItem) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, item)
}

func (f *fakeChecklistRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
	if f.GetByIDFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeChecklistRepo) List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeChecklistRepo) Update(ctx context.Context, id primitive.ObjectID, item *models.ChecklistItem) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, id, item)
}

func (f *fakeChecklistRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

func (f *fakeChecklistRepo) CountByYear(ctx context.Context, year int) (int64, error) {
	if f.CountByYearFn == nil {
		return 0, nil
	}
	return f.CountByYearFn(ctx, year)
}

func (f *fakeChecklistRepo) CountByAspect(ctx context.Context, aspectName string, year int) (int64, error) {
	if f.CountByAspectFn == nil {
		return 0, nil
	}
	return f.CountByAspectFn(ctx, aspectName, year)
}

type fakeOrgUnitRepo struct {
	CreateFn       func(ctx context.Context, unit *models.OrgUnit) error
	GetByIDFn      func(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error)
	ListFn         func(ctx context.Context, filter models.OrgUnitFilter) ([]models.OrgUnit, error)
	FindByTupleFn  func(ctx context.Context, year int, directorate, subDirectorate string, division *string, excludeID *primitive.ObjectID) (*models.OrgUnit, error)
	UpdateFn       func(ctx context.Context, id primitive.ObjectID, unit *models.OrgUnit) error
	DeleteFn       func(ctx context.Context, id primitive.ObjectID) error
	CountByYearFn  func(ctx context.Context, year int) (int64, error)
	CountFn        func(ctx context.Context, year *int) (int64, error)
	GroupByFieldFn func(ctx context.Context, field string, year *int) ([]models.NameCount, error)
}

func (f *fakeOrgUnitRepo) Create(ctx context.Context, unit *models.OrgUnit) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, unit)
}

func (f *fakeOrgUnitRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
	if f.GetByIDFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeOrgUnitRepo) List(ctx context.Context, filter models.OrgUnitFilter) ([]models.OrgUnit, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeOrgUnitRepo) FindByTuple(ctx context.Context, year int, directorate, subDirectorate string, division *string, excludeID *primitive.ObjectID) (*models.OrgUnit, error) {
	if f.FindByTupleFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.FindByTupleFn(ctx, year, directorate, subDirectorate, division, excludeID)
}

func (f *fakeOrgUnitRepo) Update(ctx context.Context, id primitive.ObjectID, unit *models.OrgUnit) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, id, unit)
}

func (f *fakeOrgUnitRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

func (f *fakeOrgUnitRepo) CountByYear(ctx context.Context, year int) (int64, error) {
	if f.CountByYearFn == nil {
		return 0, nil
	}
	return f.CountByYearFn(ctx, year)
}

func (f *fakeOrgUnitRepo) Count(ctx context.Context, year *int) (int64, error) {
	if f.CountFn == nil {
		return 0, nil
	}
	return f.CountFn(ctx, year)
}

func (f *fakeOrgUnitRepo) GroupByField(ctx context.Context, field string, year *int) ([]models.NameCount, error) {
	if f.GroupByFieldFn == nil {
		return nil, nil
	}
	return f.GroupByFieldFn(ctx, field, year)
}

type fakeAssignmentRepo struct {
	CreateFn           func(ctx context.Context, assignment *models.Assignment) error
	GetByIDFn          func(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	ListFn             func(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	FindByPairFn       func(ctx context.Context, checklistID, unitID primitive.ObjectID) (*models.Assignment, error)
	UpdateFn           func(ctx context.Context, id primitive.ObjectID, assignment *models.Assignment) error
	DeleteFn           func(ctx context.Context, id primitive.ObjectID) error
	CountByChecklistFn func(ctx context.Context, checklistID primitive.ObjectID) (int64, error)
	CountByUnitFn      func(ctx context.Context, unitID primitive.ObjectID) (int64, error)
	CountByAssignerFn  func(ctx context.Context, userID primitive.ObjectID) (int64, error)
	ListByChecklistFn  func(ctx context.Context, checklistID primitive.ObjectID) ([]models.Assignment, error)
	CountFn            func(ctx context.Context, year *int) (int64, error)
	GroupByStatusFn    func(ctx context.Context, year *int) ([]models.StatusCount, error)
	GroupByMonthFn     func(ctx context.Context, year *int) ([]models.MonthCount, error)
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, assignment)
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	if f.GetByIDFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeAssignmentRepo) FindByPair(ctx context.Context, checklistID, unitID primitive.ObjectID) (*models.Assignment, error) {
	if f.FindByPairFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.FindByPairFn(ctx, checklistID, unitID)
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, id primitive.ObjectID, assignment *models.Assignment) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, id, assignment)
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

func (f *fakeAssignmentRepo) CountByChecklist(ctx context.Context, checklistID primitive.ObjectID) (int64, error) {
	if f.CountByChecklistFn == nil {
		return 0, nil
	}
	return f.CountByChecklistFn(ctx, checklistID)
}

func (f *fakeAssignmentRepo) CountByUnit(ctx context.Context, unitID primitive.ObjectID) (int64, error) {
	if f.CountByUnitFn == nil {
		return 0, nil
	}
	return f.CountByUnitFn(ctx, unitID)
}

func (f *fakeAssignmentRepo) CountByAssigner(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if f.CountByAssignerFn == nil {
		return 0, nil
	}
	return f.CountByAssignerFn(ctx, userID)
}

func (f *fakeAssignmentRepo) ListByChecklist(ctx context.Context, checklistID primitive.ObjectID) ([]models.Assignment, error) {
	if f.ListByChecklistFn == nil {
		return nil, nil
	}
	return f.ListByChecklistFn(ctx, checklistID)
}

func (f *fakeAssignmentRepo) Count(ctx context.Context, year *int) (int64, error) {
	if f.CountFn == nil {
		return 0, nil
	}
	return f.CountFn(ctx, year)
}

func (f *fakeAssignmentRepo) GroupByStatus(ctx context.Context, year *int) ([]models.StatusCount, error) {
	if f.GroupByStatusFn == nil {
		return nil, nil
	}
	return f.GroupByStatusFn(ctx, year)
}

func (f *fakeAssignmentRepo) GroupByMonth(ctx context.Context, year *int) ([]models.MonthCount, error) {
	if f.GroupByMonthFn == nil {
		return nil, nil
	}
	return f.GroupByMonthFn(ctx, year)
}

type fakeUserRepo struct {
	CreateFn               func(ctx context.Context, user *models.User) error
	GetByIDFn              func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsernameOrEmailFn func(ctx context.Context, login string) (*models.User, error)
	FindByUsernameFn       func(ctx context.Context, username string) (*models.User, error)
	FindByEmailFn          func(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.User, error)
	ListFn                 func(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	UpdateFn               func(ctx context.Context, id primitive.ObjectID, user *models.User) error
	UpdatePasswordFn       func(ctx context.Context, id primitive.ObjectID, hash string) error
	DeleteFn               func(ctx context.Context, id primitive.ObjectID) error
	CountFn                func(ctx context.Context) (int64, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.GetByIDFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	if f.GetByUsernameOrEmailFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetByUsernameOrEmailFn(ctx, login)
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.FindByUsernameFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.FindByUsernameFn(ctx, username)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.User, error) {
	if f.FindByEmailFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.FindByEmailFn(ctx, email, excludeID)
}

func (f *fakeUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, user *models.User) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, id, user)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	if f.UpdatePasswordFn == nil {
		return nil
	}
	return f.UpdatePasswordFn(ctx, id, hash)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	if f.CountFn == nil {
		return 0, nil
	}
	return f.CountFn(ctx)
}

type fakeFileRepo struct {
	CreateRecordFn     func(ctx context.Context, record *models.FileRecord) error
	GetRecordFn        func(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error)
	ListRecordsFn      func(ctx context.Context, filter models.FileFilter) ([]models.FileRecord, error)
	DeleteRecordFn     func(ctx context.Context, id primitive.ObjectID) error
	CountByChecklistFn func(ctx context.Context, checklistID primitive.ObjectID) (int64, error)
	CountByUploaderFn  func(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UploadContentFn    func(ctx context.Context, filename string, content io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error)
	DownloadContentFn  func(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error)
	DeleteContentFn    func(ctx context.Context, fileID primitive.ObjectID) error
	CountFn            func(ctx context.Context, year *int) (int64, error)
	SizesFn            func(ctx context.Context, year *int) ([]float64, error)
	GroupByTypeFn      func(ctx context.Context, year *int) ([]models.TypeCount, error)
	GroupByMonthFn     func(ctx context.Context, year *int) ([]models.MonthCount, error)
}

func (f *fakeFileRepo) CreateRecord(ctx context.Context, record *models.FileRecord) error {
	if f.CreateRecordFn == nil {
		return nil
	}
	return f.CreateRecordFn(ctx, record)
}

func (f *fakeFileRepo) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error) {
	if f.GetRecordFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.GetRecordFn(ctx, id)
}

func (f *fakeFileRepo) ListRecords(ctx context.Context, filter models.FileFilter) ([]models.FileRecord, error) {
	if f.ListRecordsFn == nil {
		return nil, nil
	}
	return f.ListRecordsFn(ctx, filter)
}

func (f *fakeFileRepo) DeleteRecord(ctx context.Context, id primitive.ObjectID) error {
	if f.DeleteRecordFn == nil {
		return nil
	}
	return f.DeleteRecordFn(ctx, id)
}

func (f *fakeFileRepo) CountByChecklist(ctx context.Context, checklistID primitive.ObjectID) (int64, error) {
	if f.CountByChecklistFn == nil {
		return 0, nil
	}
	return f.CountByChecklistFn(ctx, checklistID)
}

func (f *fakeFileRepo) CountByUploader(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if f.CountByUploaderFn == nil {
		return 0, nil
	}
	return f.CountByUploaderFn(ctx, userID)
}

func (f *fakeFileRepo) UploadContent(ctx context.Context, filename string, content io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	if f.UploadContentFn == nil {
		return primitive.NewObjectID(), nil
	}
	return f.UploadContentFn(ctx, filename, content, uploadedBy, contentType)
}

func (f *fakeFileRepo) DownloadContent(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	if f.DownloadContentFn == nil {
		return nil, mongo.ErrNoDocuments
	}
	return f.DownloadContentFn(ctx, fileID)
}

func (f *fakeFileRepo) DeleteContent(ctx context.Context, fileID primitive.ObjectID) error {
	if f.DeleteContentFn == nil {
		return nil
	}
	return f.DeleteContentFn(ctx, fileID)
}

func (f *fakeFileRepo) Count(ctx context.Context, year *int) (int64, error) {
	if f.CountFn == nil {
		return 0, nil
	}
	return f.CountFn(ctx, year)
}

func (f *fakeFileRepo) Sizes(ctx context.Context, year *int) ([]float64, error) {
	if f.SizesFn == nil {
		return nil, nil
	}
	return f.SizesFn(ctx, year)
}

func (f *fakeFileRepo) GroupByType(ctx context.Context, year *int) ([]models.TypeCount, error) {
	if f.GroupByTypeFn == nil {
		return nil, nil
	}
	return f.GroupByTypeFn(ctx, year)
}

func (f *fakeFileRepo) GroupByMonth(ctx context.Context, year *int) ([]models.MonthCount, error) {
	if f.GroupByMonthFn == nil {
		return nil, nil
	}
	return f.GroupByMonthFn(ctx, year)
}

func strPtr(s string) *string { return &s }
