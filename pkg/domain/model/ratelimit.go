package model

// RateLimitUsage reports one hourly API counter: how many calls the limit
// allows and how many have been spent this hour.
type RateLimitUsage struct {
	Limit int
	Used  int
}
