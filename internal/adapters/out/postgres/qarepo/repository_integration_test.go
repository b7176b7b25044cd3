package qarepo_test

import (
	"context"
	"testing"
	"time"

	"manufacturing/internal/adapters/out/postgres/pgtest"
	"manufacturing/internal/adapters/out/postgres/qarepo"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type InspectionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *qarepo.GormInspectionRepository
}

func (suite *InspectionRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), &qarepo.InspectionDTO{}, &qarepo.DefectDTO{})
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *InspectionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE qa_inspections, qa_defects").Error)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = qarepo.NewGormInspectionRepository(suite.db, tracker)
}

func (suite *InspectionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestPendingInspection_ApproveRoundTrip() {
	ctx := context.Background()
	itemID := kernel.NewUUID()
	now := time.Date(2026, 5, 6, 14, 0, 0, 0, time.UTC)
	inspection, err := qa.NewPendingInspection(kernel.NewUUID(), itemID, nil, 100, "Auto-created: production target met", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, inspection))

	pending, err := suite.repository.HasPendingForItem(ctx, itemID)
	suite.Require().NoError(err)
	suite.True(pending)

	lead, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleQALead)
	suite.Require().NoError(err)
	changed, err := inspection.Approve(lead, now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, inspection))

	pending, err = suite.repository.HasPendingForItem(ctx, itemID)
	suite.Require().NoError(err)
	suite.False(pending)

	loaded, err := suite.repository.Get(ctx, inspection.ID())
	suite.Require().NoError(err)
	suite.Equal(qa.ResultPassed, loaded.Result())
	suite.Equal(qa.TypeFinal, loaded.Type())
	suite.Require().NotNil(loaded.InspectorID())
	suite.True(loaded.InspectorID().IsEqual(lead.ID()))
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestManualInspection_WithDefects() {
	ctx := context.Background()
	itemID := kernel.NewUUID()
	now := time.Date(2026, 5, 6, 9, 0, 0, 0, time.UTC)
	inspection, err := qa.NewInspection(qa.NewInspectionParams{
		ID: kernel.NewUUID(), OrderItemID: &itemID, Type: qa.TypeRandomAudit, BatchSize: 40,
		Passed: false, InspectorID: kernel.NewUUID(), InspectedAt: now,
	})
	suite.Require().NoError(err)
	_, err = inspection.AddDefect(kernel.NewUUID(), qa.DefectRework, 3, "loose boards", now)
	suite.Require().NoError(err)
	_, err = inspection.AddDefect(kernel.NewUUID(), qa.DefectDestroy, 1, "split runner", now.Add(time.Minute))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, inspection))

	loaded, err := suite.repository.Get(ctx, inspection.ID())
	suite.Require().NoError(err)
	suite.Equal(qa.ResultFailed, loaded.Result())
	suite.Require().Len(loaded.Defects(), 2)
	suite.Equal(qa.DefectRework, loaded.Defects()[0].Type)
	suite.Equal(3, loaded.Defects()[0].Quantity)

	pending, err := suite.repository.HasPendingForItem(ctx, itemID)
	suite.Require().NoError(err)
	suite.False(pending)
}

func (suite *InspectionRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestInspectionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InspectionRepositoryIntegrationTestSuite))
}
