package codebinge

type Database interface {
	Open() error
	Close() error
}
