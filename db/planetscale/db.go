package planetscale

import (
	"context"
	"database/sql"

	"github.com/navbryce/heddit-be/config"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

// store groups the per-entity databases bound to one session (or transaction)
type store struct {
	*UserDB
	*CommunityDB
	*PostDB
	*CommentDB
	*VoteDB
}

func newStore(sess db.Session) *store {
	return &store{
		UserDB:      getUserDB(sess),
		CommunityDB: getCommunityDB(sess),
		PostDB:      getPostDB(sess),
		CommentDB:   getCommentDB(sess),
		VoteDB:      getVoteDB(sess),
	}
}

type PlanetScaleDB struct {
	*store
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg config.DBConfig) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(0)

	psdb, err := newDatabase(sqlDB)
	if err != nil {
		return nil, err
	}
	return psdb, nil
}

func newDatabase(sqlDB *sql.DB) (*PlanetScaleDB, error) {
	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &PlanetScaleDB{
		store: newStore(sess),
		sess:  sess,
		sqlDB: sqlDB,
	}, nil
}

func (psdb *PlanetScaleDB) WithTx(ctx context.Context, fn func(tx appDb.Tx) error) error {
	return psdb.sess.TxContext(ctx, func(sess db.Session) error {
		return fn(newStore(sess))
	}, nil)
}

func (psdb *PlanetScaleDB) GetSQLDB() *sql.DB {
	return psdb.sqlDB
}

func (psdb *PlanetScaleDB) Close() error {
	return psdb.sess.Close()
}
