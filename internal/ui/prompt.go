package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"pkgview/pkg/manager"
)

// Confirm prompts the user for yes/no confirmation.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	label := prompt
	if defaultYes {
		label += " [Y/n]"
	} else {
		label += " [y/N]"
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   "",
	}

	if defaultYes {
		p.Default = "y"
	}

	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, err
		}
		return defaultYes, nil // Return default on error
	}

	result = strings.ToLower(strings.TrimSpace(result))
	if result == "" {
		return defaultYes, nil
	}

	return result == "y" || result == "yes", nil
}

// SelectPackage prompts the user to select a package from a list.
func SelectPackage(packages []manager.Package, prompt string) (*manager.Package, error) {
	if len(packages) == 0 {
		return nil, fmt.Errorf("no packages to select from")
	}

	if len(packages) == 1 {
		return &packages[0], nil
	}

	pointer := "▸"
	check := "✓"
	if !UseUnicode {
		pointer = ">"
		check = "*"
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   pointer + " {{ .Name | cyan }} {{ .Version | green }}",
		Inactive: "  {{ .Name }} {{ .Version | faint }}",
		Selected: check + " {{ .Name | cyan }} {{ .Version | green }}",
	}

	p := promptui.Select{
		Label:     prompt,
		Items:     packages,
		Templates: templates,
		Size:      10,
		Searcher:  PackageSearcher(packages),
	}

	index, _, err := p.Run()
	if err != nil {
		return nil, err
	}

	return &packages[index], nil
}

// PackageSearcher matches packages whose name contains the input,
// ignoring case.
func PackageSearcher(packages []manager.Package) func(input string, index int) bool {
	return func(input string, index int) bool {
		name := strings.ToLower(packages[index].Name)
		return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
	}
}
