package components

import (
	"groupbuy-api/internal/infra/db"
	"groupbuy-api/internal/infra/readstore"
	"groupbuy-api/internal/infra/repository"
	"groupbuy-api/internal/infra/uow"
	"groupbuy-api/internal/usecase/queries"
	"groupbuy-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		readstore.NewDealReadStore,
		readstore.NewCommitmentReadStore,
		readstore.NewSummaryReadStore,
		readstore.NewUserReadStore,
		func(s *readstore.DealReadStore) queries.DealReadStore { return s },
		func(s *readstore.CommitmentReadStore) queries.CommitmentReadStore { return s },
		func(s *readstore.SummaryReadStore) queries.SummaryReadStore { return s },
		func(s *readstore.UserReadStore) queries.UserReadStore { return s },
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// The worker resolves role-addressed notifications outside any
		// transaction, so the user repository is exposed directly too.
		func() shared.UserRepository { return repository.NewUserRepository() },
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
