package query

type Place struct {
	Query string
}
