package domain

import (
	"fmt"
	"strings"
)

const customerPathMarker = "/customers/"

// ExtractCustomerID derives the opaque customer identifier embedded in a
// payment-platform customer URL (".../customers/<id>"). Pure parse: it fails
// only when the URL does not match the expected shape, which is a contract
// violation, not a runtime condition.
func ExtractCustomerID(customerURL string) (string, error) {
	idx := strings.LastIndex(customerURL, customerPathMarker)
	if idx < 0 {
		return "", fmt.Errorf("customer URL %q: missing %q segment", customerURL, customerPathMarker)
	}

	id := strings.TrimSuffix(customerURL[idx+len(customerPathMarker):], "/")
	if id == "" || strings.ContainsAny(id, "/?#") {
		return "", fmt.Errorf("customer URL %q: malformed customer identifier", customerURL)
	}
	return id, nil
}
