// Package viewpatch restricts the administration block of the generated
// user-groups form view to system administrators.
package viewpatch

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Defaults used by Patch.
const (
	AdminField  = "sel_groups_2_4"
	SystemGroup = "base.group_system"
)

// Patch sets groups="base.group_system" on every <group> element that has a
// direct <field name="sel_groups_2_4"> child and returns the re-serialised view.
func Patch(arch string) (string, error) {
	return PatchField(arch, AdminField, SystemGroup)
}

// PatchField is Patch with a configurable field name and group.
func PatchField(arch, field, groups string) (string, error) {
	if strings.TrimSpace(arch) == "" {
		return "", fmt.Errorf("viewpatch: empty arch")
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(arch); err != nil {
		return "", fmt.Errorf("viewpatch: parse arch: %w", err)
	}
	if doc.Root() == nil {
		return "", fmt.Errorf("viewpatch: arch has no root element")
	}
	path, err := etree.CompilePath(fmt.Sprintf("//group/field[@name='%s']", field))
	if err != nil {
		return "", fmt.Errorf("viewpatch: compile path: %w", err)
	}
	for _, f := range doc.FindElementsPath(path) {
		if parent := f.Parent(); parent != nil {
			parent.CreateAttr("groups", groups)
		}
	}
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("viewpatch: write arch: %w", err)
	}
	return out, nil
}
