package domain

import "time"

// Owner is the account all facts hang off. Timezone is an IANA zone name
// used to resolve "today" for the owner.
type Owner struct {
	ID          string
	DisplayName string
	Timezone    string
	CreatedAt   time.Time
}
