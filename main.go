package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/grutapig/ytcomments/comments"
	"github.com/joho/godotenv"
)

const ENV_PROD_CONFIG = ".env"

func main() {
	configFile := flag.String("config", ENV_PROD_CONFIG, "Configuration file to load (e.g., .env, .dev.env)")
	apiKey := flag.String("key", "", "YouTube Data API key (overrides youtube_api_key)")
	video := flag.String("video", "", "YouTube video URL or id")
	output := flag.String("output", "", "Output CSV file (default: "+DEFAULT_OUTPUT_FILE+")")
	history := flag.Int("history", 0, "Print the last N runs from the run log and exit")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "YouTube Comment Downloader\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -video https://www.youtube.com/watch?v=dQw4w9WgXcQ\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -key $KEY -video https://youtu.be/dQw4w9WgXcQ -output out.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -history 10\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Note: flags override environment variables, which override the config file\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *configFile != "" {
		if err := godotenv.Load(*configFile); err != nil {
			log.Printf("Warning: Failed to load config file %s: %v", *configFile, err)
			log.Println("Continuing with environment variables...")
		} else {
			log.Printf("Successfully loaded configuration from %s", *configFile)
		}
	}

	if *history > 0 {
		dbPath := firstNonEmpty(os.Getenv(ENV_LOGGING_DATABASE_PATH), DEFAULT_LOGGING_DATABASE_PATH)
		if err := ShowRunHistory(os.Stdout, dbPath, *history, NewNotificationFormatter()); err != nil {
			log.Fatalf("Failed to show run history: %v", err)
		}
		return
	}

	if *video == "" && flag.NArg() > 0 {
		*video = flag.Arg(0)
	}

	container, err := BuildContainer(&CLIOptions{
		APIKey:     *apiKey,
		Video:      *video,
		OutputFile: *output,
	})
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	err = container.Invoke(func(app *Application) {
		if err := app.Initialize(); err != nil {
			runErr = err
			return
		}
		defer app.Shutdown()

		summary, err := app.Run(ctx)
		runErr = err
		if err == nil {
			fmt.Print(app.formatter.FormatForConsole(*summary))
		}
	})
	if err != nil {
		log.Fatalf("Failed to invoke application: %v", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", comments.UserMessage(runErr))
		stop()
		os.Exit(1)
	}
}
