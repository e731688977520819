package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// matchActivityBucket resolves a user-typed goal bucket name against the
// built-in activity tags and labels. Anything unmatched is treated as a
// custom preference title.
func matchActivityBucket(name string) (model.Activity, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, a := range model.Activities() {
		if needle == string(a) || needle == strings.ToLower(a.Label()) {
			return a, true
		}
	}
	return "", false
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}
