package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/partybac/internal/bac"
	"github.com/KirkDiggler/partybac/internal/models"
	"github.com/KirkDiggler/partybac/internal/services/messaging"
	"github.com/KirkDiggler/partybac/internal/services/party"
	"github.com/bwmarrin/discordgo"
)

// Option names shared by several subcommands
const (
	optName     = "name"
	optWeight   = "weight"
	optGender   = "gender"
	optStatus   = "status"
	optLink     = "link"
	optType     = "type"
	optDrink    = "drink"
	optCategory = "category"
	optSubcat   = "subcategory"
	optVolume   = "volume"
	optPercent  = "percent"
	optCode     = "code"
	optNumber   = "number"
	optPassword = "password"
)

// PartyCommand handles the /party command
type PartyCommand struct {
	BaseCommand
	partyService party.Service
	messaging    messaging.Service
	log          *slog.Logger
}

func nameOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         optName,
		Description:  "Teilnehmer (Standard: dein Anzeigename)",
		Required:     required,
		Autocomplete: true,
	}
}

// NewPartyCommand creates a new party command handler
func NewPartyCommand(partyService party.Service, messagingService messaging.Service, logger *slog.Logger) *PartyCommand {
	if logger == nil {
		logger = slog.Default()
	}

	drinkChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.Catalog))
	for _, key := range models.CatalogKeys() {
		drinkChoices = append(drinkChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  models.Catalog[key].Label,
			Value: string(key),
		})
	}

	return &PartyCommand{
		BaseCommand: BaseCommand{
			Name:        "party",
			Description: "Promille-Tracker für die Party",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Der Party beitreten",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        optWeight,
							Description: "Gewicht in kg",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optGender,
							Description: "Geschlecht",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "männlich", Value: string(models.GenderMale)},
								{Name: "weiblich", Value: string(models.GenderFemale)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optStatus,
							Description: "Beziehungsstatus",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "single", Value: string(models.StatusSingle)},
								{Name: "vergeben", Value: string(models.StatusTaken)},
								{Name: "kompliziert", Value: string(models.StatusComplicated)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optName,
							Description: "Name (Standard: dein Anzeigename)",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optLink,
							Description: "Social-Media-Link",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "drink",
					Description: "Ein Standardgetränk eintragen",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optType,
							Description: "Getränk",
							Required:    true,
							Choices:     drinkChoices,
						},
						nameOption(false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "custom",
					Description: "Ein eigenes Getränk eintragen",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        optVolume,
							Description: "Menge in ml",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        optPercent,
							Description: "Alkoholgehalt in Prozent",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optCategory,
							Description: "Kategorie, z.B. Bier",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optSubcat,
							Description: "Sorte, z.B. Helles",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optDrink,
							Description: "Name des Getränks, z.B. Aperol Spritz",
						},
						nameOption(false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "scan",
					Description: "Ein Getränk per Barcode eintragen",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optCode,
							Description: "Barcode (EAN)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        optVolume,
							Description: "Menge in ml, falls abweichend",
						},
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        optPercent,
							Description: "Alkoholgehalt in Prozent, falls abweichend",
						},
						nameOption(false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "drinks",
					Description: "Getränke eines Teilnehmers anzeigen",
					Options:     []*discordgo.ApplicationCommandOption{nameOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "undo",
					Description: "Ein Getränk wieder austragen",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        optNumber,
							Description: "Nummer aus /party drinks",
							Required:    true,
						},
						nameOption(false),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bac",
					Description: "Aktuellen Promillewert anzeigen",
					Options:     []*discordgo.ApplicationCommandOption{nameOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Die Party verlassen",
					Options:     []*discordgo.ApplicationCommandOption{nameOption(false)},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Die Rangliste anzeigen",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "activity",
					Description: "Die letzten Ereignisse anzeigen",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Die Party zurücksetzen",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optPassword,
							Description: "Admin-Passwort",
							Required:    true,
						},
					},
				},
			},
		},
		partyService: partyService,
		messaging:    messagingService,
		log:          logger,
	}
}

// Handle processes a Discord interaction for the party command
func (c *PartyCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]
	opts := optionMap(sub.Options)
	name := stringOption(opts, optName, displayName(i))

	switch sub.Name {
	case "join":
		return c.handleJoin(ctx, s, i, joinInput(opts, name))
	case "drink":
		return c.handleDrink(ctx, s, i, &party.AddDrinkInput{
			Name:  name,
			Drink: models.StandardDrink{Key: models.CatalogKey(stringOption(opts, optType, ""))},
		})
	case "custom":
		return c.handleDrink(ctx, s, i, &party.AddDrinkInput{Name: name, Drink: customDrink(opts)})
	case "scan":
		return c.handleScan(ctx, s, i, scanInput(opts, name))
	case "drinks":
		return c.handleDrinks(ctx, s, i, name)
	case "undo":
		return c.handleUndo(ctx, s, i, &party.RemoveDrinkInput{Name: name, Index: undoIndex(opts)})
	case "bac":
		return c.handleBAC(ctx, s, i, name)
	case "leave":
		return c.handleLeave(ctx, s, i, name)
	case "leaderboard":
		return c.handleLeaderboard(ctx, s, i)
	case "activity":
		return c.handleActivity(ctx, s, i)
	case "reset":
		return c.handleReset(ctx, s, i, stringOption(opts, optPassword, ""))
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *PartyCommand) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, input *party.JoinInput) error {
	out, err := c.partyService.Join(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}

	embed := renderParticipantEmbed(out.Participant, 0)
	embed.Title = "👋 " + out.Participant.Name
	embed.Description = out.Message
	embed.Color = ColorSuccess
	return RespondWithEmbeds(s, i, []*discordgo.MessageEmbed{embed}, nil)
}

func (c *PartyCommand) handleDrink(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, input *party.AddDrinkInput) error {
	out, err := c.partyService.AddDrink(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithEmbeds(s, i, renderDrinkEmbeds(out, nil), leaderboardButtons())
}

func (c *PartyCommand) handleScan(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, input *party.AddScannedDrinkInput) error {
	out, err := c.partyService.AddScannedDrink(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithEmbeds(s, i, renderDrinkEmbeds(&out.AddDrinkOutput, out.Product), leaderboardButtons())
}

func (c *PartyCommand) handleDrinks(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string) error {
	out, err := c.partyService.GetParticipant(ctx, &party.GetParticipantInput{Name: name})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithEphemeralEmbed(s, i, renderParticipantEmbed(out.Participant, out.BAC))
}

func (c *PartyCommand) handleUndo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, input *party.RemoveDrinkInput) error {
	out, err := c.partyService.RemoveDrink(ctx, input)
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithMessage(s, i, fmt.Sprintf("↩️ %s: %s ausgetragen. Aktueller Promillewert: %s",
		input.Name, out.Removed.Type, bac.Format(out.BAC)))
}

func (c *PartyCommand) handleBAC(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string) error {
	out, err := c.partyService.EstimateBAC(ctx, &party.EstimateBACInput{Name: name})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("%s: %s", name, bac.Format(out.BAC)))
}

func (c *PartyCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string) error {
	out, err := c.partyService.Leave(ctx, &party.LeaveInput{Name: name})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithMessage(s, i, fmt.Sprintf("👋 %s hat die Party verlassen.", out.Participant.Name))
}

func (c *PartyCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.partyService.GetLeaderboard(ctx, &party.GetLeaderboardInput{})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithEmbeds(s, i, []*discordgo.MessageEmbed{renderLeaderboardEmbed(out.Leaderboard)}, leaderboardButtons())
}

func (c *PartyCommand) handleActivity(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.partyService.GetActivityLog(ctx, &party.GetActivityLogInput{Limit: activityPageSize})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	return RespondWithEmbeds(s, i, []*discordgo.MessageEmbed{renderActivityEmbed(out.Entries)}, nil)
}

func (c *PartyCommand) handleReset(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, credential string) error {
	out, err := c.partyService.Reset(ctx, &party.ResetInput{Credential: credential})
	if err != nil {
		return c.respondError(ctx, s, i, err)
	}
	c.log.Info("party reset from discord", "user", displayName(i), "participants", out.RemovedParticipants)
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("🧹 Party zurückgesetzt: %d Teilnehmer, %d Getränke entfernt.",
		out.RemovedParticipants, out.RemovedDrinks))
}

// respondError classifies err and answers with the matching friendly message
func (c *PartyCommand) respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	kind := party.KindOf(err)
	detail := err.Error()
	if kind == party.KindInternal {
		c.log.Error("party command failed", "error", err)
		detail = ""
	}

	msg, msgErr := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorKind: string(kind),
		Detail:    detail,
	})
	if msgErr != nil {
		return RespondWithError(s, i, err.Error())
	}
	return RespondWithEphemeralEmbed(s, i, renderErrorEmbed(msg.Title, msg.Message))
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name, fallback string) string {
	if opt, ok := opts[name]; ok {
		if v := strings.TrimSpace(opt.StringValue()); v != "" {
			return v
		}
	}
	return fallback
}

func floatOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (float64, bool) {
	opt, ok := opts[name]
	if !ok {
		return 0, false
	}
	return opt.FloatValue(), true
}

// displayName prefers the guild nickname over the account name
func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			if i.Member.User.GlobalName != "" {
				return i.Member.User.GlobalName
			}
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		if i.User.GlobalName != "" {
			return i.User.GlobalName
		}
		return i.User.Username
	}
	return ""
}

func joinInput(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *party.JoinInput {
	weight, _ := floatOption(opts, optWeight)
	return &party.JoinInput{
		Name:       name,
		WeightKg:   weight,
		Gender:     models.Gender(stringOption(opts, optGender, "")),
		Status:     models.Status(stringOption(opts, optStatus, "")),
		SocialLink: stringOption(opts, optLink, ""),
	}
}

// customDrink reads the strength as a percentage
func customDrink(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) models.CustomDrink {
	volume, _ := floatOption(opts, optVolume)
	percent, _ := floatOption(opts, optPercent)
	return models.CustomDrink{
		Category:        stringOption(opts, optCategory, ""),
		Subcategory:     stringOption(opts, optSubcat, ""),
		Name:            stringOption(opts, optDrink, ""),
		VolumeML:        volume,
		AlcoholFraction: percent / 100,
	}
}

func scanInput(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *party.AddScannedDrinkInput {
	input := &party.AddScannedDrinkInput{
		Name: name,
		Code: stringOption(opts, optCode, ""),
	}
	if volume, ok := floatOption(opts, optVolume); ok {
		input.VolumeML = &volume
	}
	if percent, ok := floatOption(opts, optPercent); ok {
		fraction := percent / 100
		input.AlcoholFraction = &fraction
	}
	return input
}

// undoIndex converts the 1-based number shown by /party drinks to an index
func undoIndex(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) int {
	opt, ok := opts[optNumber]
	if !ok {
		return -1
	}
	return int(opt.IntValue()) - 1
}
