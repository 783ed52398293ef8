package vm

import (
	"fmt"
	"strconv"
)

type flavor struct {
	name  string
	vcpus int
	ram   int
}

var flavorTable = []flavor{
	{"small1", 1, 2},
	{"small2", 1, 4},
	{"small3", 2, 4},
	{"medium1", 2, 6},
	{"medium2", 2, 8},
	{"medium3", 4, 8},
	{"medium4", 4, 12},
	{"large1", 4, 16},
	{"large2", 6, 12},
	{"large3", 6, 16},
	{"large4", 8, 16},
	{"large5", 8, 24},
}

// SuggestFlavor names the flavor for a vCPU/RAM combination. Catalogue sizes
// keep their numbered name; anything else gets a custom tier. Zero inputs
// yield no suggestion.
func SuggestFlavor(vcpus, ramGB int) string {
	if vcpus == 0 || ramGB == 0 {
		return ""
	}
	for _, f := range flavorTable {
		if f.vcpus == vcpus && f.ram == ramGB {
			return "ncs.g-" + f.name
		}
	}
	switch {
	case vcpus <= 2 && ramGB <= 4:
		return "ncs.g-small.cus"
	case vcpus <= 6 && ramGB <= 8:
		return "ncs.g-medium.cus"
	case vcpus <= 8 && ramGB <= 24:
		return "ncs.g-large.cus"
	}
	return "ncs.g-xlarge"
}

// SizeLabel buckets a VM as small, medium or large and appends the vCPU count.
func SizeLabel(vcpus, ramGB int) string {
	base := "large"
	switch {
	case vcpus <= 2 && ramGB <= 4:
		base = "small"
	case vcpus <= 4 && ramGB <= 8:
		base = "medium"
	}
	return base + "-" + strconv.Itoa(vcpus)
}

func sectionName(title string) string {
	return fmt.Sprintf("[VM] %s", title)
}
