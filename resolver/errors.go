//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names
package resolver

import (
	"fmt"
)

// QueryFailure is the reason a zone query failed ENUM(
// timeout // no response within the zone timeout
// transport // network or protocol error
// malformed // response could not be parsed
// rcode // nameserver answered with an error code
// unsigned // response contains no signature over the DNSKEY set
// )
type QueryFailure uint8

// ResolutionError is returned if the address of the nameserver can't be determined.
// No zone can be checked without it.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("can't resolve nameserver '%s': %s", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// QueryError is returned if the signatures of a single zone can't be retrieved
type QueryError struct {
	Zone       string
	Nameserver string
	Reason     QueryFailure
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query of zone '%s' at %s failed (%s): %s", e.Zone, e.Nameserver, e.Reason, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
