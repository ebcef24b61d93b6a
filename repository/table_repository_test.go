package repository

import (
	"context"
	"testing"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TableRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TableRepository
}

func (s *TableRepositoryTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.repo = NewTableRepository(s.db)
}

func TestTableRepository(t *testing.T) {
	suite.Run(t, new(TableRepositoryTestSuite))
}

func (s *TableRepositoryTestSuite) TestCheckInAndGetActive() {
	ctx := context.Background()

	table, err := s.repo.Create(ctx, 5)
	s.NoError(err)
	s.Equal(5, table.TableNumber)
	s.Equal(models.OpenTotal, table.Total)
	s.NotEmpty(table.CheckedInTime)

	found, err := s.repo.GetActive(ctx, 5)
	s.NoError(err)
	s.Equal(table.ID, found.ID)
}

func (s *TableRepositoryTestSuite) TestDuplicateCheckInConflict() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 7)
	s.NoError(err)

	_, err = s.repo.Create(ctx, 7)
	s.Error(err)
	s.True(errors.IsKind(err, errors.KindConflict), "second check-in should conflict")
}

func (s *TableRepositoryTestSuite) TestPartialUniqueIndexBackstopsRace() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 9)
	s.NoError(err)

	// Insert behind the repository's back, as a racing request that passed
	// the pre-read would.
	err = s.db.Create(&models.Table{
		TableNumber:   9,
		CheckedInTime: models.Timestamp(),
		Total:         models.OpenTotal,
	}).Error
	s.Error(err, "a second occupied row for the same number must not commit")

	// A closed row for the same number is fine.
	err = s.db.Create(&models.Table{
		TableNumber:   9,
		CheckedInTime: models.Timestamp(),
		Total:         0,
	}).Error
	s.NoError(err)
}

func (s *TableRepositoryTestSuite) TestGetActiveExcludesCheckedOut() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 3)
	s.NoError(err)

	rows, err := s.repo.Checkout(ctx, 3, 42)
	s.NoError(err)
	s.EqualValues(1, rows)

	_, err = s.repo.GetActive(ctx, 3)
	s.Error(err)
	s.True(errors.IsKind(err, errors.KindNotFound))

	// The number is free again after checkout.
	_, err = s.repo.Create(ctx, 3)
	s.NoError(err)
}

func (s *TableRepositoryTestSuite) TestCheckoutIsConditional() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, 4)
	s.NoError(err)

	rows, err := s.repo.Checkout(ctx, 4, 10)
	s.NoError(err)
	s.EqualValues(1, rows)

	// Second checkout matches nothing and must not overwrite the total.
	rows, err = s.repo.Checkout(ctx, 4, 999)
	s.NoError(err)
	s.EqualValues(0, rows)

	latest, err := s.repo.GetLatest(ctx, 4)
	s.NoError(err)
	s.Equal(10, latest.Total)
}

func (s *TableRepositoryTestSuite) TestAllReturnsEveryRow() {
	ctx := context.Background()

	tables, err := s.repo.All(ctx)
	s.NoError(err)
	s.Empty(tables)

	_, err = s.repo.Create(ctx, 1)
	s.NoError(err)
	_, err = s.repo.Checkout(ctx, 1, 0)
	s.NoError(err)
	_, err = s.repo.Create(ctx, 1)
	s.NoError(err)

	tables, err = s.repo.All(ctx)
	s.NoError(err)
	s.Len(tables, 2, "All includes checked-out rows")
}

func (s *TableRepositoryTestSuite) TestGetLatestPicksNewestRow() {
	ctx := context.Background()

	_, err := s.repo.GetLatest(ctx, 6)
	s.True(errors.IsKind(err, errors.KindNotFound))

	_, err = s.repo.Create(ctx, 6)
	s.NoError(err)
	_, err = s.repo.Checkout(ctx, 6, 15)
	s.NoError(err)
	second, err := s.repo.Create(ctx, 6)
	s.NoError(err)

	latest, err := s.repo.GetLatest(ctx, 6)
	s.NoError(err)
	s.Equal(second.ID, latest.ID)
	s.True(latest.Occupied())
}
