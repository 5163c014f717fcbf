package filter

import (
	"fmt"
	"strconv"
)

/*
Here the Env used in the event target filters is defined.
Once this struct is fixed, it should not be changed, otherwise filter
expressions embedded in events may not compile any more.
*/

type Target struct {
	ConnectionId string
	Role         string
	Language     string
}

type Env struct {
	Room string
	Target
}

// OnlyConnection builds a target filter matching exactly one connection.
func OnlyConnection(connectionId string) string {
	return fmt.Sprintf(`Target.ConnectionId == %s`, strconv.Quote(connectionId))
}

// ExceptConnection builds a target filter matching everyone but one connection.
func ExceptConnection(connectionId string) string {
	return fmt.Sprintf(`Target.ConnectionId != %s`, strconv.Quote(connectionId))
}
