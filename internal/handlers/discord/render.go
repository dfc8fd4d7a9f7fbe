package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/partybac/internal/bac"
	"github.com/KirkDiggler/partybac/internal/models"
	"github.com/KirkDiggler/partybac/internal/services/party"
	"github.com/bwmarrin/discordgo"
)

// activityPageSize is how many activity entries fit in one embed
const activityPageSize = 15

// renderLeaderboardEmbed renders the ranking with party statistics
func renderLeaderboardEmbed(board *models.Leaderboard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Promille-Rangliste",
		Color: ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Teilnehmer", Value: fmt.Sprintf("%d", board.ParticipantCount), Inline: true},
			{Name: "Getränke", Value: fmt.Sprintf("%d", board.TotalDrinks), Inline: true},
			{Name: "Ø Promille", Value: bac.Format(board.AverageBAC), Inline: true},
		},
	}
	if !board.GeneratedAt.IsZero() {
		embed.Timestamp = board.GeneratedAt.Format(time.RFC3339)
	}

	if len(board.Entries) == 0 {
		embed.Description = "Noch keine Teilnehmer. Mit `/party join` eintragen!"
		return embed
	}

	var sb strings.Builder
	for _, entry := range board.Entries {
		sb.WriteString(leaderboardLine(entry))
		sb.WriteString("\n")
	}
	embed.Description = sb.String()
	return embed
}

// leaderboardLine renders one ranked participant
func leaderboardLine(entry *models.LeaderboardEntry) string {
	rank := entry.Symbol
	if rank == "" {
		rank = fmt.Sprintf("%d.", entry.Position)
	}
	line := fmt.Sprintf("%s **%s** %s (%d %s)",
		rank, entry.Name, bac.Format(entry.BAC), entry.DrinkCount, drinkWord(entry.DrinkCount))
	if status := statusLabel(entry.Status); status != "" {
		line += " " + status
	}
	return line
}

func drinkWord(n int) string {
	if n == 1 {
		return "Getränk"
	}
	return "Getränke"
}

func statusLabel(status models.Status) string {
	switch status {
	case models.StatusSingle:
		return "💚"
	case models.StatusTaken:
		return "💍"
	case models.StatusComplicated:
		return "🤷"
	default:
		return ""
	}
}

func leaderboardButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Aktualisieren",
					Style:    discordgo.PrimaryButton,
					CustomID: ButtonRefreshLeaderboard,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
				},
				discordgo.Button{
					Label:    "Aktivität",
					Style:    discordgo.SecondaryButton,
					CustomID: ButtonShowActivity,
					Emoji:    &discordgo.ComponentEmoji{Name: "📜"},
				},
			},
		},
	}
}

// renderActivityEmbed renders the activity feed, newest first
func renderActivityEmbed(entries []*models.ActivityEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Aktivität",
		Color: ColorInfo,
	}
	if len(entries) == 0 {
		embed.Description = "Noch nichts passiert."
		return embed
	}

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("`%s` %s\n", entry.Timestamp.Format("15:04"), activityLine(entry)))
	}
	embed.Description = sb.String()
	return embed
}

// activityLine renders the payload of one activity entry
func activityLine(entry *models.ActivityEntry) string {
	switch entry.Kind {
	case models.ActivityJoin:
		if entry.Join != nil {
			return fmt.Sprintf("👋 %s ist der Party beigetreten", entry.Join.Participant)
		}
	case models.ActivityDrink:
		if entry.Drink != nil {
			return fmt.Sprintf("🍻 %s: %s (%s)", entry.Drink.Participant, entry.Drink.Drink, bac.Format(entry.Drink.BAC))
		}
	case models.ActivityMilestone:
		if entry.Milestone != nil {
			return entry.Milestone.Message
		}
	}
	return string(entry.Kind)
}

// renderDrinkEmbeds renders a drink confirmation followed by one embed per milestone
func renderDrinkEmbeds(out *party.AddDrinkOutput, product *models.Product) []*discordgo.MessageEmbed {
	title := out.Title
	if title == "" {
		title = "Getränk wurde eingetragen!"
	}
	confirmation := &discordgo.MessageEmbed{
		Title:       title,
		Description: out.Message,
		Color:       ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Getränk", Value: out.Drink.Type, Inline: true},
			{Name: "Menge", Value: fmt.Sprintf("%.0f ml", out.Drink.VolumeML), Inline: true},
			{Name: "Alkohol", Value: fmt.Sprintf("%.1f %%", out.Drink.AlcoholFraction*100), Inline: true},
			{Name: "Aktueller Promillewert", Value: bac.Format(out.BAC)},
		},
	}
	if product != nil && product.ImageURL != "" {
		confirmation.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: product.ImageURL}
	}

	embeds := []*discordgo.MessageEmbed{confirmation}
	for _, m := range out.Milestones {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       "🎉 Meilenstein!",
			Description: m.Message,
			Color:       ColorMilestone,
		})
	}
	return embeds
}

// renderParticipantEmbed renders a participant with numbered drinks, as
// used by the undo subcommand
func renderParticipantEmbed(p *models.Participant, concentration float64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: strings.TrimSpace(p.Name + " " + statusLabel(p.Status)),
		Color: ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Promille", Value: bac.Format(concentration), Inline: true},
			{Name: "Getränke", Value: fmt.Sprintf("%d", p.DrinkCount()), Inline: true},
		},
	}
	if p.SocialLink != "" {
		embed.URL = p.SocialLink
	}

	if len(p.Drinks) == 0 {
		embed.Description = "Noch keine Getränke."
		return embed
	}

	var sb strings.Builder
	for idx, drink := range p.Drinks {
		sb.WriteString(fmt.Sprintf("%d. %s `%s`\n", idx+1, drink.Type, drink.Timestamp.Format("15:04")))
	}
	embed.Description = sb.String()
	return embed
}

// renderErrorEmbed renders a failure
func renderErrorEmbed(title, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorError,
	}
}
