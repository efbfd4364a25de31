package prompts

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

func PromptInitPlaces(placesDefault int32) (int32, error) {
	selection := "exact"
	switch placesDefault {
	case 2:
		selection = "2"
	case 4:
		selection = "4"
	default:
		if placesDefault >= 0 {
			selection = "other"
		}
	}

	err := huh.NewSelect[string]().
		Title("Welcome to Reckon! How should report amounts be rendered?").
		Description("Exact keeps every amount's input precision; fixed rounds each value to a set number of decimal places").
		Options(
			huh.NewOption("Exact precision", "exact"),
			huh.NewOption("2 decimal places", "2"),
			huh.NewOption("4 decimal places", "4"),
			huh.NewOption("Other", "other"),
		).
		Value(&selection).
		Run()

	if err != nil {
		return 0, err
	}

	switch selection {
	case "exact":
		return -1, nil
	case "other":
		var customInput string
		err := huh.NewInput().
			Title("Please enter the number of decimal places:").
			Value(&customInput).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 0 {
					return errors.New("a whole number of decimal places is required")
				}
				return nil
			}).
			Run()

		if err != nil {
			return 0, err
		}

		n, _ := strconv.Atoi(strings.TrimSpace(customInput))
		return int32(n), nil
	default:
		n, _ := strconv.Atoi(selection)
		return int32(n), nil
	}
}

func PromptInitLogFile(fileDefault string) (string, error) {
	return PromptInput(
		"Where should rejected rows be logged? (leave empty to disable)",
		fileDefault,
		nil,
	)
}

func PromptInitPretty(prettyDefault bool) (bool, error) {
	return PromptConfirm("Render balance tables instead of CSV by default?", prettyDefault)
}
