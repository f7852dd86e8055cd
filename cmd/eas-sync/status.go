package main

import (
	"fmt"
	"io"

	"github.com/alexjbarnes/eas-sync/eas"
	"github.com/alexjbarnes/eas-sync/internal/config"
	"github.com/alexjbarnes/eas-sync/internal/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type accountStatus struct {
	Host       string `yaml:"host"`
	Username   string `yaml:"username"`
	DeviceID   string `yaml:"device_id"`
	DeviceType string `yaml:"device_type"`
}

type folderStatus struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	SyncKey  string `yaml:"sync_key,omitempty"`
	Messages int    `yaml:"messages"`
}

type statusReport struct {
	Account       accountStatus  `yaml:"account"`
	StatePath     string         `yaml:"state_path"`
	Provisioned   bool           `yaml:"provisioned"`
	FolderSyncKey string         `yaml:"folder_sync_key,omitempty"`
	Folders       []folderStatus `yaml:"folders"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored sync state",
		Long:  "Prints the account, provisioning state, and per-folder sync keys as YAML. Does not contact the server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := buildStatus(a.cfg, a.state)
			if err != nil {
				return err
			}

			return writeStatus(cmd.OutOrStdout(), report)
		},
	}
}

func buildStatus(cfg *config.Config, st *state.State) (*statusReport, error) {
	report := &statusReport{
		Account: accountStatus{
			Host:       cfg.Host,
			Username:   cfg.Username,
			DeviceID:   cfg.DeviceID,
			DeviceType: cfg.DeviceType,
		},
		StatePath: cfg.StatePath,
		Folders:   []folderStatus{},
	}

	policyKey, err := st.PolicyKey()
	if err != nil {
		return nil, err
	}
	report.Provisioned = policyKey != "" && policyKey != eas.PolicyKeyUnset

	if report.FolderSyncKey, err = st.ExtraString(eas.ExtraFolderSyncKey); err != nil {
		return nil, err
	}

	folders, err := st.AllFolders()
	if err != nil {
		return nil, err
	}

	for _, f := range folders {
		mf, err := st.MessageFolder(f.ServerID)
		if err != nil {
			return nil, err
		}

		key, err := mf.FolderExtraString(eas.ExtraSyncKey)
		if err != nil {
			return nil, err
		}

		n, err := mf.Count()
		if err != nil {
			return nil, err
		}

		report.Folders = append(report.Folders, folderStatus{
			ID:       f.ServerID,
			Name:     f.Name,
			Type:     f.Type.String(),
			SyncKey:  key,
			Messages: n,
		})
	}

	return report, nil
}

func writeStatus(w io.Writer, report *statusReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}

	return enc.Close()
}
