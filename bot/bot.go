package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"dinein-dashboard/analytics"
	"dinein-dashboard/models"
	"dinein-dashboard/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const computeTimeout = time.Minute

type Bot struct {
	api      *tgbotapi.BotAPI
	files    *services.FileService
	log      *logrus.Logger
	maxBytes int64
	http     *http.Client
	now      func() time.Time

	sessionsMu sync.Mutex
	sessions   map[int64]*services.Session // by chat id
}

func New(token string, files *services.FileService, maxUploadMB int64, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:      api,
		files:    files,
		log:      log,
		maxBytes: maxUploadMB << 20,
		http:     &http.Client{Timeout: 2 * time.Minute},
		now:      time.Now,
		sessions: make(map[int64]*services.Session),
	}, nil
}

func (b *Bot) session(chatID int64) *services.Session {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	s, ok := b.sessions[chatID]
	if !ok {
		s = services.NewSession()
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "How to use the dashboard"},
		tgbotapi.BotCommand{Command: "files", Description: "Stored exports"},
		tgbotapi.BotCommand{Command: "load", Description: "Load a stored export"},
		tgbotapi.BotCommand{Command: "report", Description: "Dashboard summary"},
		tgbotapi.BotCommand{Command: "filter", Description: "Change filters"},
		tgbotapi.BotCommand{Command: "reset", Description: "Reset filters"},
		tgbotapi.BotCommand{Command: "export", Description: "Excel workbook"},
	)
	_, err := b.api.Request(cfg)
	return err
}

// Start polls updates until ctx is cancelled. Each update is handled on its
// own goroutine so a slow recompute never blocks newer filter changes.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		b.log.WithError(err).Warn("set bot commands")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	b.log.WithField("bot", b.api.Self.UserName).Info("bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	if msg.Document != nil {
		b.handleDocument(ctx, chatID, msg.Document)
		return
	}
	if !msg.IsCommand() {
		return
	}
	args := strings.Fields(msg.CommandArguments())
	switch msg.Command() {
	case "start", "help":
		b.send(chatID, helpText)
	case "files":
		b.handleFiles(ctx, chatID)
	case "load":
		if len(args) != 1 {
			b.send(chatID, "Usage: /load <filename>")
			return
		}
		b.handleLoad(ctx, chatID, args[0])
	case "report":
		b.sendReport(ctx, chatID, 0)
	case "filter":
		b.handleFilter(ctx, chatID, args)
	case "reset":
		b.session(chatID).UpdateFilter(func(f *models.FilterState) { *f = models.DefaultFilter() })
		b.sendReport(ctx, chatID, 0)
	case "export":
		b.sendExport(ctx, chatID)
	}
}

const helpText = `Send a dine-in CSV export as a document to store and load it.

/files - stored exports
/load <filename> - load a stored export
/report - dashboard summary
/filter day=weekend kitchen=Marina,Downtown preset=last7Days ayce=hide mains=2
/reset - reset filters
/export - Excel workbook of the current view`

func (b *Bot) handleFiles(ctx context.Context, chatID int64) {
	files := b.files.List(ctx)
	if len(files) == 0 {
		b.send(chatID, "No stored files.")
		return
	}
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "%s (%d KB)\n", f.Filename, (f.Size+1023)/1024)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) handleLoad(ctx context.Context, chatID int64, filename string) {
	ds, err := b.files.Open(ctx, filename)
	if errors.Is(err, services.ErrNotFound) {
		b.send(chatID, "File not found: "+filename)
		return
	}
	if err != nil {
		b.send(chatID, "Could not read "+filename)
		return
	}
	b.session(chatID).Load(ds)
	b.sendReport(ctx, chatID, 0)
}

func (b *Bot) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	if !services.IsCSV(doc.FileName) {
		b.send(chatID, "Only .csv files are accepted.")
		return
	}
	if b.maxBytes > 0 && int64(doc.FileSize) > b.maxBytes {
		b.send(chatID, "File is too large.")
		return
	}
	content, err := b.download(ctx, doc.FileID)
	if err != nil {
		b.log.WithError(err).WithField("file", doc.FileName).Error("document download failed")
		b.send(chatID, "Could not download the file.")
		return
	}
	stored, err := b.files.Upload(ctx, doc.FileName, content)
	switch {
	case errors.Is(err, services.ErrEmptyFile):
		b.send(chatID, "The file is empty.")
		return
	case errors.Is(err, services.ErrTooLarge):
		b.send(chatID, "File is too large.")
		return
	case err != nil:
		b.send(chatID, "Upload failed.")
		return
	}
	b.send(chatID, "Stored as "+stored.Filename)
	b.handleLoad(ctx, chatID, stored.Filename)
}

func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	link, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	if b.maxBytes > 0 {
		return io.ReadAll(io.LimitReader(resp.Body, b.maxBytes+1))
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) handleFilter(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.send(chatID, helpText)
		return
	}
	now := b.now()
	_, _, err := b.session(chatID).TryUpdateFilter(func(p *analytics.Prepared, f *models.FilterState) (bool, error) {
		return true, applyFilterArgs(f, args, p, now)
	})
	if err != nil {
		b.send(chatID, err.Error())
		return
	}
	b.sendReport(ctx, chatID, 0)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.WithError(err).Debug("answer callback")
	}
	if cq.Message == nil {
		return
	}
	chatID, msgID := cq.Message.Chat.ID, cq.Message.MessageID

	switch cq.Data {
	case services.CallbackExport:
		b.sendExport(ctx, chatID)
		return
	case services.CallbackRefresh:
		b.sendReport(ctx, chatID, msgID)
		return
	}

	now := b.now()
	_, _, err := b.session(chatID).TryUpdateFilter(func(p *analytics.Prepared, f *models.FilterState) (bool, error) {
		return applyCallback(f, cq.Data, p, now)
	})
	if err != nil {
		b.log.WithError(err).WithField("data", cq.Data).Warn("bad callback")
		return
	}
	b.sendReport(ctx, chatID, msgID)
}

func (b *Bot) dashboard(ctx context.Context, chatID int64) (*services.Session, *models.Dashboard, bool) {
	s := b.session(chatID)
	ctx, cancel := context.WithTimeout(ctx, computeTimeout)
	defer cancel()
	d, err := s.Dashboard(ctx)
	switch {
	case errors.Is(err, services.ErrNoDataset):
		b.send(chatID, "No dataset loaded. Send a CSV or use /load.")
		return nil, nil, false
	case errors.Is(err, services.ErrSuperseded):
		// a newer request will publish
		return nil, nil, false
	case err != nil:
		b.log.WithError(err).WithField("chat_id", chatID).Error("dashboard compute")
		b.send(chatID, "Could not compute the dashboard.")
		return nil, nil, false
	}
	return s, d, true
}

// sendReport sends the report card, or edits msgID in place when set.
func (b *Bot) sendReport(ctx context.Context, chatID int64, msgID int) {
	s, d, ok := b.dashboard(ctx, chatID)
	if !ok {
		return
	}
	card := services.BuildReportCard(s.Name(), d)
	kb := cardMarkup(card)
	if msgID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, card.Text, kb)
		_, err := b.api.Send(edit)
		if err == nil || strings.Contains(err.Error(), "not modified") {
			return
		}
		if !strings.Contains(err.Error(), "not found") {
			b.log.WithError(err).WithField("chat_id", chatID).Warn("edit report")
			return
		}
	}
	msg := tgbotapi.NewMessage(chatID, card.Text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("send report")
	}
}

func (b *Bot) sendExport(ctx context.Context, chatID int64) {
	s, d, ok := b.dashboard(ctx, chatID)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := services.WriteWorkbook(&buf, d); err != nil {
		b.log.WithError(err).Error("export workbook")
		b.send(chatID, "Export failed.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: exportName(s.Name()), Bytes: buf.Bytes()})
	if _, err := b.api.Send(doc); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("send export")
	}
}

func exportName(dataset string) string {
	base := strings.TrimSuffix(dataset, ".csv")
	if base == "" {
		base = "dashboard"
	}
	return base + "_dashboard.xlsx"
}

// cardMarkup converts ReportCard.Buttons to a Telegram inline keyboard.
func cardMarkup(c services.ReportCard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(c.Buttons))
	for _, row := range c.Buttons {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("send")
	}
}
