package query

type TransitRoutes struct {
	OriginSearch      string
	DestinationSearch string
}
