package branches

import (
	"cmp"
	"slices"
	"strings"
)

const (
	currentBranchMarkerConstant = "*"
	mainBranchNameConstant      = "main"
	masterBranchNameConstant    = "master"
)

// Listing is the parsed output of git branch --all.
type Listing struct {
	Current  string
	Branches []string
}

// ParseListing splits git branch output into the current branch and the remaining branches.
// The remaining branches are ordered main, master, then alphabetically, without duplicates.
func ParseListing(output string) Listing {
	listing := Listing{}
	for line := range strings.Lines(output) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedLine, currentBranchMarkerConstant) {
			listing.Current = strings.TrimSpace(strings.TrimPrefix(trimmedLine, currentBranchMarkerConstant))
			continue
		}
		listing.Branches = append(listing.Branches, trimmedLine)
	}

	slices.SortFunc(listing.Branches, compareBranchNames)
	listing.Branches = slices.Compact(listing.Branches)
	return listing
}

func compareBranchNames(first string, second string) int {
	if rankDifference := cmp.Compare(branchRank(first), branchRank(second)); rankDifference != 0 {
		return rankDifference
	}
	return strings.Compare(first, second)
}

func branchRank(branchName string) int {
	switch branchName {
	case mainBranchNameConstant:
		return 0
	case masterBranchNameConstant:
		return 1
	default:
		return 2
	}
}
