package main

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier is told about every finished run.
type Notifier interface {
	NotifyRun(summary RunSummary)
}

type NopNotifier struct{}

func (NopNotifier) NotifyRun(RunSummary) {}

// TelegramNotifier sends the run summary to the admin chat and uploads the CSV on success.
type TelegramNotifier struct {
	bot       *tgbotapi.BotAPI
	chatID    int64
	formatter *NotificationFormatter
}

func NewTelegramNotifier(apiKey, apiEndpoint, proxyDSN string, chatID int64, formatter *NotificationFormatter) (*TelegramNotifier, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	if proxyDSN != "" {
		proxyURL, err := url.Parse(proxyDSN)
		if err != nil {
			return nil, fmt.Errorf("error parse proxy dsn: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(apiKey, apiEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.Printf("Telegram notifier authorized as @%s", bot.Self.UserName)

	return &TelegramNotifier{
		bot:       bot,
		chatID:    chatID,
		formatter: formatter,
	}, nil
}

func (t *TelegramNotifier) NotifyRun(summary RunSummary) {
	msg := tgbotapi.NewMessage(t.chatID, t.formatter.FormatForTelegram(summary))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Failed to send Telegram run summary for %s: %v", summary.VideoID, err)
		return
	}

	if summary.Err != nil || summary.OutputFile == "" {
		return
	}
	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FilePath(summary.OutputFile))
	doc.Caption = fmt.Sprintf("Comments of %s", summary.VideoID)
	if _, err := t.bot.Send(doc); err != nil {
		log.Printf("Failed to upload %s to Telegram: %v", summary.OutputFile, err)
	}
}
