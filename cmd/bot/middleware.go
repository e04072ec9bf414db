package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
	"github.com/Jacobbrewer1/tickets/pkg/request"
	"github.com/gorilla/mux"
)

// commandController picks the processor for a slash command.
type commandController func(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error)

// commandProcessor handles an interaction.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(a IApp, handler Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				if err := request.WriteMessage(cw, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error())); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionHandler routes interactions. Component interactions that somebody is waiting for are handed to the
// collector, the rest go to the slash command controllers and button processors.
func interactionHandler(a IApp, controllers map[string]commandController, buttons map[string]commandProcessor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		if a.Collector().Dispatch(i) {
			return
		}

		var (
			name      string
			processor commandProcessor
		)

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			name = i.ApplicationCommandData().Name
			controller, ok := controllers[name]
			if !ok {
				a.Log().Error(fmt.Sprintf("No controller found for command %s", name), slog.String("command", name))
				respondError(a, i, name)
				return
			}

			var err error
			processor, err = controller(a, i)
			if err != nil {
				a.Log().Error(fmt.Sprintf("Error getting processor for command %s", name),
					slog.String(logging.KeyError, err.Error()))
				respondError(a, i, name)
				return
			} else if processor == nil {
				// The controller has answered the interaction itself.
				return
			}
		case discordgo.InteractionMessageComponent:
			name = i.MessageComponentData().CustomID
			var ok bool
			processor, ok = buttons[name]
			if !ok {
				// Components of prompts that are no longer waited for.
				a.Log().Debug("No processor found for component", slog.String("custom_id", name))
				return
			}
		default:
			return
		}

		a.Log().Debug("Handling interaction "+name, slog.String(logging.KeyGuild, i.GuildID))

		now := time.Now()
		defer func() {
			monitoring.DiscordCommandDuration.WithLabelValues(name).Observe(time.Since(now).Seconds())
		}()

		// Recover from any panics that occur in the processor.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in interaction processor",
					slog.String("command", name),
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				respondError(a, i, name)
			}
		}()

		if err := processor(a, i); err != nil {
			a.Log().Error(fmt.Sprintf("Error processing command %s", name),
				slog.String(logging.KeyGuild, i.GuildID),
				slog.String(logging.KeyError, err.Error()))
			respondError(a, i, name)
		}
	}
}

func respondError(a IApp, i *discordgo.InteractionCreate, name string) {
	monitoring.TotalInteractionErrors.WithLabelValues(name).Inc()
	if err := respondSlashError(a, i); err != nil {
		a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}
