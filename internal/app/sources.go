package app

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rkrishnan/caredesk/internal/credential"
	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
	"github.com/rkrishnan/caredesk/internal/source/clinic"
	"github.com/rkrishnan/caredesk/internal/source/inbox"
	"github.com/rkrishnan/caredesk/internal/source/records"
)

// sourcesRegisteredMsg is sent when all configured sources have been
// registered with the poller.
type sourcesRegisteredMsg struct {
	count int
}

// sourceAdapters holds the constructed adapters per source kind. The
// clinic adapter is kept separately because the follow-up slot finder
// queries it directly.
type sourceAdapters struct {
	clinic  *clinic.Adapter
	entries []adapterEntry
}

type adapterEntry struct {
	src source.Source
	cfg model.SourceConfig
}

// buildAdapters constructs adapters for every enabled source in the
// configuration, loading credentials from the system keyring. Sources
// whose credentials are missing are skipped with a log line.
func buildAdapters(cfg *model.AppConfig) *sourceAdapters {
	adapters := &sourceAdapters{}
	if cfg == nil {
		return adapters
	}

	for _, src := range cfg.Sources {
		if !src.Enabled {
			continue
		}

		switch src.Type {
		case string(model.SourceTypeClinic):
			adapter := createClinicAdapter(src)
			if adapter == nil {
				continue
			}
			adapters.clinic = adapter
			adapters.entries = append(adapters.entries, adapterEntry{
				src: adapter, cfg: src,
			})

		case string(model.SourceTypeRecords):
			adapter := createRecordsAdapter(src)
			if adapter == nil {
				continue
			}
			adapters.entries = append(adapters.entries, adapterEntry{
				src: adapter, cfg: src,
			})

		case string(model.SourceTypeInbox):
			adapter := createInboxAdapter(src)
			if adapter == nil {
				continue
			}
			adapters.entries = append(adapters.entries, adapterEntry{
				src: adapter, cfg: src,
			})
		}
	}

	return adapters
}

// registerSources registers every built adapter with the poller and
// mirrors the source configuration into the store so the feed can show
// per-source metadata.
func (m *Model) registerSources() tea.Cmd {
	s := m.store
	p := m.poller
	adapters := m.adapters

	return func() tea.Msg {
		ctx := context.Background()

		for _, entry := range adapters.entries {
			p.RegisterSource(entry.src, entry.cfg)
			if err := s.UpsertSource(ctx, entry.cfg); err != nil {
				log.Printf("recording source %q: %v", entry.cfg.ID, err)
			}
		}

		return sourcesRegisteredMsg{count: len(adapters.entries)}
	}
}

// createClinicAdapter builds a clinic adapter from a source
// configuration, loading the API token from the system keyring.
func createClinicAdapter(src model.SourceConfig) *clinic.Adapter {
	token, err := credential.Get(credential.KeyFor(src.ID, "token"))
	if err != nil {
		log.Printf(
			"skipping clinic source %q (%s): credential not found: %v",
			src.Name, src.ID, err,
		)
		return nil
	}

	client := clinic.NewClient(src.BaseURL, token)
	return clinic.NewAdapter(client, src.ID)
}

// createRecordsAdapter builds an EHR adapter from a source
// configuration, loading the app password from the system keyring.
func createRecordsAdapter(src model.SourceConfig) *records.Adapter {
	password, err := credential.Get(credential.KeyFor(src.ID, "password"))
	if err != nil {
		log.Printf(
			"skipping records source %q (%s): credential not found: %v",
			src.Name, src.ID, err,
		)
		return nil
	}

	username := ""
	if src.Config != nil {
		username = src.Config["username"]
	}

	client := records.NewClient(src.BaseURL, username, password)
	return records.NewAdapter(client, src.ID)
}

// createInboxAdapter builds a referral mailbox adapter from a source
// configuration, loading the IMAP password from the system keyring.
func createInboxAdapter(src model.SourceConfig) *inbox.Adapter {
	password, err := credential.Get(credential.KeyFor(src.ID, "password"))
	if err != nil {
		log.Printf(
			"skipping inbox source %q (%s): credential not found: %v",
			src.Name, src.ID, err,
		)
		return nil
	}

	host, port, username, mailbox := "", "993", "", ""
	useTLS := true
	if src.Config != nil {
		host = src.Config["host"]
		if p := src.Config["port"]; p != "" {
			port = p
		}
		username = src.Config["username"]
		mailbox = src.Config["mailbox"]
		if src.Config["tls"] == "false" {
			useTLS = false
		}
	}
	if host == "" || username == "" {
		log.Printf(
			"skipping inbox source %q (%s): host and username required",
			src.Name, src.ID,
		)
		return nil
	}

	return inbox.NewAdapter(
		host, port, username, password, useTLS, mailbox, src.ID,
	)
}
