package synapse

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateReport describes users that occur in more than one team, one line
// per user in sorted user id order. Returns the empty string when every user
// belongs to exactly one team.
func DuplicateReport(teamsByUser map[string][]string) string {
	var ids []string
	for id, teams := range teamsByUser {
		if len(teams) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("Synapse user id %s occurs in teams %s",
			id, strings.Join(teamsByUser[id], ", ")))
	}
	return strings.Join(lines, "\n")
}
