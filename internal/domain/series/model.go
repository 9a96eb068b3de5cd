package series

type Series struct {
	ID   int64
	Name string
}
