package model

const (
	CheckpointCollection = "cursor_checkpoint"

	// CheckpointID is the _id of the single checkpoint document.
	CheckpointID = "cursor"
)

type Checkpoint struct {
	ID    string `bson:"_id"`
	Round uint64 `bson:"round"`
	Intra uint64 `bson:"intra"`
}
