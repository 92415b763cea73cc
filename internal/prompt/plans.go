package prompt

import (
	"fmt"
	"path/filepath"

	"github.com/brogergvhs/noveld/internal/volume"
)

// CampaignInput is what the opening prompts collect.
type CampaignInput struct {
	Series      string
	Author      string
	StartVolume int
	EndVolume   int
}

const separator = "\n====================="

// AskCampaign asks for series, author and the volume range until the user
// confirms. ok is false when the user declines the confirmation.
func AskCampaign(p Port) (in CampaignInput, ok bool, err error) {
	if in.Series, err = p.String("Enter the series name"); err != nil {
		return in, false, err
	}
	if in.Author, err = p.String("Enter the author name"); err != nil {
		return in, false, err
	}

	for {
		if in.StartVolume, err = p.Int("Enter the starting volume number"); err != nil {
			return in, false, err
		}
		if in.EndVolume, err = p.Int("Enter the ending volume number"); err != nil {
			return in, false, err
		}
		if in.StartVolume >= 1 && in.StartVolume <= in.EndVolume {
			break
		}
		p.Println("The volume range must start at 1 or higher and not end before it starts.")
	}

	p.Println(fmt.Sprintf(
		"You entered the following volume range:\nStart Volume: %d\nEnd Volume: %d\nSeries: %s\nAuthor: %s",
		in.StartVolume, in.EndVolume, in.Series, in.Author,
	))
	ok, err = p.Confirm("Is this correct?")

	return in, ok, err
}

// AskPlans collects one confirmed plan per volume in [in.StartVolume,
// in.EndVolume]. When covers is non-empty the user picks one (or none) per
// volume.
func AskPlans(p Port, in CampaignInput, covers []string) ([]volume.Plan, error) {
	plans := make([]volume.Plan, 0, in.EndVolume-in.StartVolume+1)

	for n := in.StartVolume; n <= in.EndVolume; n++ {
		// A rejected plan is discarded and volume n is asked again; n only
		// advances once a plan has been accepted.
		for {
			plan, err := askPlan(p, n, covers)
			if err != nil {
				return nil, err
			}

			p.Println(describePlan(plan))
			ok, err := p.Confirm("Is this correct?")
			if err != nil {
				return nil, err
			}
			if ok {
				plans = append(plans, plan)
				break
			}

			p.Println("Let's try again with the correct information.")
		}

		p.Println(separator)
	}

	return plans, nil
}

func askPlan(p Port, number int, covers []string) (volume.Plan, error) {
	plan := volume.Plan{Number: number}

	var err error
	if plan.Title, err = p.String(fmt.Sprintf("Enter the custom title for Volume %d", number)); err != nil {
		return plan, err
	}

	for {
		if plan.Start, err = p.Int(fmt.Sprintf("Enter the starting chapter number for Volume %d", number)); err != nil {
			return plan, err
		}
		if plan.End, err = p.Int(fmt.Sprintf("Enter the ending chapter number for Volume %d", number)); err != nil {
			return plan, err
		}

		verr := plan.Validate()
		if verr == nil {
			break
		}
		p.Println(verr.Error())
	}

	if len(covers) > 0 {
		items := make([]string, 0, len(covers)+1)
		items = append(items, "(no cover)")
		for _, c := range covers {
			items = append(items, filepath.Base(c))
		}

		idx, err := p.Select(fmt.Sprintf("Cover image for Volume %d", number), items)
		if err != nil {
			return plan, err
		}
		if idx > 0 {
			plan.Cover = covers[idx-1]
		}
	}

	return plan, nil
}

func describePlan(plan volume.Plan) string {
	cover := "none"
	if plan.Cover != "" {
		cover = filepath.Base(plan.Cover)
	}

	return fmt.Sprintf(
		"You entered the following for Volume %d:\nTitle: %s\nStart Chapter: %d\nEnd Chapter: %d\nCover: %s",
		plan.Number, plan.Title, plan.Start, plan.End, cover,
	)
}
