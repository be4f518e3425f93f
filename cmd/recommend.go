package cmd

import (
	"encoding/json"
	"fmt"

	"room-booking-api/core/server"
	"room-booking-api/core/utils"
	"room-booking-api/modules/recommendation"
	"room-booking-api/modules/recommendation/dto"

	"github.com/spf13/cobra"
)

var recommendReq dto.RecommendationRequest

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print recommendations for one request as JSON",
	Example: `  room-booking-api recommend --date 2024-01-15 --start 10:00 --end 11:00 --headcount 6
  room-booking-api recommend --date 2024-01-15 --start 14:00 --end 15:30 --headcount 12 --building "North Tower"`,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recommendReq.Date, "date", "", "Date (YYYY-MM-DD)")
	f.StringVar(&recommendReq.StartTime, "start", "", "Start time (HH:MM)")
	f.StringVar(&recommendReq.EndTime, "end", "", "End time (HH:MM)")
	f.IntVar(&recommendReq.Headcount, "headcount", 0, "Number of attendees")
	f.StringVar(&recommendReq.Activity, "activity", "", "Activity description")
	f.StringVar(&recommendReq.PreferredBuilding, "building", "", "Preferred building")
	f.StringVar(&recommendReq.PreferredFloor, "floor", "", "Preferred floor")
	f.StringVar(&recommendReq.PreferredCategory, "category", "", "Preferred space category")
	f.IntVar(&recommendReq.MinCapacity, "min-capacity", 0, "Exclude spaces below this capacity")
	f.IntVar(&recommendReq.MaxCapacity, "max-capacity", 0, "Exclude spaces above this capacity")
	f.StringSliceVar(&recommendReq.AcceptableBuildings, "acceptable-building", nil, "Only consider these buildings")
	f.StringSliceVar(&recommendReq.AcceptableCategories, "acceptable-category", nil, "Only consider these categories")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if err := utils.NewValidator().Validate(&recommendReq); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	ctx := cmd.Context()
	app, err := server.Bootstrap(ctx, configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	// no enqueuer: a one-shot run must not schedule background work
	mod, err := recommendation.New(app.Config, app.DB, app.Cache, nil)
	if err != nil {
		return err
	}

	result, appErr := mod.Service.Recommend(ctx, &recommendReq)
	if appErr != nil {
		return appErr
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
