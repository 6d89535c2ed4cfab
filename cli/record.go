// ABOUTME: Voice recording command driving capture, pipeline, and creation
// ABOUTME: Records until Enter, shows the extraction, and confirms before saving
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yasunobu-co-ltd-coder/matip/audio"
	"github.com/yasunobu-co-ltd-coder/matip/deals"
	"github.com/yasunobu-co-ltd-coder/matip/pipeline"
)

// RecordCommand captures a voice memo and turns it into a deal.
func RecordCommand(ctx context.Context, service *deals.Service, sess deals.Session, controller *audio.Controller, pipe *pipeline.Pipeline) error {
	if err := service.Refresh(ctx); err != nil {
		return err
	}

	sessionID, err := controller.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start recording: %w", err)
	}
	fmt.Printf("● Recording (%s)... press Enter to stop\n", sessionID)

	reader := bufio.NewReader(os.Stdin)
	if _, err := reader.ReadString('\n'); err != nil {
		controller.Abort()
		return fmt.Errorf("failed to read input: %w", err)
	}

	capture, err := controller.Stop()
	if err != nil {
		return fmt.Errorf("failed to stop recording: %w", err)
	}
	if capture == nil {
		return fmt.Errorf("no recording in progress")
	}

	fmt.Println("Transcribing...")
	result, err := pipe.Run(ctx, capture, sess.Today)
	if err != nil {
		if errors.Is(err, pipeline.ErrExtractionFailed) {
			// The transcript survived; show it so the user can enter the
			// deal by hand.
			fmt.Println("Could not extract fields from the recording.")
			fmt.Printf("Transcript:\n%s\n", result.Transcript)
			return err
		}
		return err
	}

	fields := pipeline.Normalize(result.Candidate, sess.Today, service.UserNames())

	fmt.Println("\nTranscript:")
	fmt.Printf("  %s\n\n", result.Transcript)
	fmt.Println("Extracted deal:")
	fmt.Printf("  Client:     %s\n", orDash(fields.ClientName))
	fmt.Printf("  Memo:       %s\n", fields.Memo)
	fmt.Printf("  Due:        %s\n", fields.DueDate)
	fmt.Printf("  Importance: %s  Urgency: %s  Profit: %s\n", fields.Importance, fields.Urgency, fields.Profit)
	fmt.Printf("  Assignment: %s", fields.Assignment)
	if fields.Assignee != "" {
		fmt.Printf(" (%s)", fields.Assignee)
	}
	fmt.Println()

	if !confirm("Save this deal?") {
		fmt.Println("Discarded")
		return nil
	}

	created, err := service.Create(ctx, fields, sess)
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	fmt.Printf("✓ Deal created: %s (ID: %s)\n", displayName(*created), created.ID)
	return nil
}
