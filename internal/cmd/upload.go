package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eddmann/strava-cli/internal/strava"
)

var validDataTypes = map[string]bool{
	"fit": true, "fit.gz": true,
	"gpx": true, "gpx.gz": true,
	"tcx": true, "tcx.gz": true,
}

var (
	uploadDataType    string
	uploadName        string
	uploadDescription string
	uploadSportType   string
	uploadTrainer     bool
	uploadCommute     bool
	uploadExternalID  string
	uploadWait        bool
)

const (
	uploadPollAttempts = 60
	uploadPollInterval = time.Second
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an activity file",
	Long: `Uploads a FIT, GPX or TCX activity file (optionally gzipped). The
file type is detected from the extension unless --data-type is given.

With --wait the command polls until Strava has processed the upload and
reports the resulting activity.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		dataType := uploadDataType
		if dataType == "" {
			dataType = detectDataType(path)
		}
		if !validDataTypes[dataType] {
			return &usageError{message: fmt.Sprintf("invalid data type %q: expected fit, fit.gz, gpx, gpx.gz, tcx or tcx.gz", dataType)}
		}

		status, err := a.client.UploadActivity(cmd.Context(), strava.UploadRequest{
			Filename:    filepath.Base(path),
			DataType:    dataType,
			Content:     content,
			Name:        uploadName,
			Description: uploadDescription,
			SportType:   uploadSportType,
			Trainer:     uploadTrainer,
			Commute:     uploadCommute,
			ExternalID:  uploadExternalID,
		})
		if err != nil {
			return err
		}
		if status.Error != "" {
			return fmt.Errorf("upload failed: %s", status.Error)
		}

		if !uploadWait {
			return a.emit(fmt.Sprintf("Upload started: ID %d", status.ID), status)
		}

		fmt.Fprintln(os.Stderr, "Waiting for processing...")
		for attempt := 0; attempt < uploadPollAttempts; attempt++ {
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			case <-time.After(uploadPollInterval):
			}

			status, err = a.client.GetUpload(cmd.Context(), status.ID)
			if err != nil {
				return err
			}
			if status.Error != "" {
				return fmt.Errorf("upload failed: %s", status.Error)
			}
			if status.ActivityID != 0 {
				return a.emit(fmt.Sprintf("Upload complete: activity %d", status.ActivityID), status)
			}
		}
		return fmt.Errorf("upload processing timeout")
	},
}

var uploadStatusCmd = &cobra.Command{
	Use:   "status <upload-id>",
	Short: "Check upload processing status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.requireAuth(cmd); err != nil {
			return err
		}

		id, err := parseID(args[0], "upload id")
		if err != nil {
			return err
		}
		status, err := a.client.GetUpload(cmd.Context(), id)
		if err != nil {
			return err
		}
		return a.render(status)
	},
}

// detectDataType infers the upload type from the filename, treating a
// trailing .gz as a wrapper around the real extension.
func detectDataType(path string) string {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".gz") {
		inner := filepath.Ext(strings.TrimSuffix(name, ".gz"))
		if inner == "" {
			return ""
		}
		return strings.TrimPrefix(inner, ".") + ".gz"
	}
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadDataType, "data-type", "t", "", "file type: fit, fit.gz, gpx, gpx.gz, tcx, tcx.gz")
	uploadCmd.Flags().StringVarP(&uploadName, "name", "n", "", "activity name")
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "activity description")
	uploadCmd.Flags().StringVarP(&uploadSportType, "sport-type", "s", "", "sport type override")
	uploadCmd.Flags().BoolVar(&uploadTrainer, "trainer", false, "mark as trainer/indoor")
	uploadCmd.Flags().BoolVar(&uploadCommute, "commute", false, "mark as commute")
	uploadCmd.Flags().StringVar(&uploadExternalID, "external-id", "", "external ID for the activity")
	uploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "wait for processing to complete")

	uploadCmd.AddCommand(uploadStatusCmd)
	rootCmd.AddCommand(uploadCmd)
}
