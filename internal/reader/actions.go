package reader

import (
	"context"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/selection"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

const (
	ActionCancel    = "cancel"
	ActionHighlight = "highlight"
	ActionFavorite  = "favorite"
	ActionAsk       = "ask"
	ActionCopy      = "copy"
)

// ActionBar is the floating action affordance. It is visible only while
// something is selected; the icon states use any-member semantics.
type ActionBar struct {
	Visible     bool                `json:"visible"`
	Placement   selection.Placement `json:"placement"`
	Highlighted bool                `json:"highlighted"`
	Favorited   bool                `json:"favorited"`
	Verses      []string            `json:"verses,omitempty"`
}

// Outcome reports one dispatched intent. Active is the state a toggle moved
// towards. The selection is back to Idle whatever Success says.
type Outcome struct {
	Action    string   `json:"action"`
	Success   bool     `json:"success"`
	Active    bool     `json:"active,omitempty"`
	Verses    []string `json:"verses,omitempty"`
	Text      string   `json:"text,omitempty"`
	Reference string   `json:"reference,omitempty"`
}

func (v *View) ActionBar() ActionBar {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.actionBar()
}

func (v *View) actionBar() ActionBar {
	anchor, ok := v.sel.Anchor()
	if !ok {
		return ActionBar{}
	}
	targets := v.targets()
	return ActionBar{
		Visible:     true,
		Placement:   selection.Place(anchor, v.viewport, v.bar),
		Highlighted: v.current(func(st *VerseUIState) bool { return st.Highlighted }).Any(targets),
		Favorited:   v.current(func(st *VerseUIState) bool { return st.Favorited }).Any(targets),
		Verses:      targets,
	}
}

func (v *View) current(pick func(*VerseUIState) bool) verse.Set {
	set := verse.NewSet()
	for loc, st := range v.state {
		if pick(st) {
			set.Add(loc.VerseNumber)
		}
	}
	return set
}

// finish returns the selection to Idle.
func (v *View) finish() {
	v.sel.Commit()
	v.syncSelection()
}

func (v *View) Cancel() Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sel.Cancel()
	v.syncSelection()
	return Outcome{Action: ActionCancel, Success: true}
}

// ToggleHighlight applies the any-highlighted rule to the selected verses
// against the stored marks. Verse state changes only for verses the store
// confirmed.
func (v *View) ToggleHighlight(ctx context.Context) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.finish()

	targets := v.targets()
	out := Outcome{Action: ActionHighlight, Verses: targets}
	if len(targets) == 0 {
		return out
	}

	res := v.svc.highlights.Toggle(ctx, v.userID, v.chapter, targets)
	for _, n := range res.Applied {
		v.state[v.chapter.Verse(n)].Highlighted = res.Highlighted
	}
	out.Active = res.Highlighted
	out.Success = res.OK()
	return out
}

// ToggleFavorite applies the favoriting policy to the selected verses. On a
// partial failure the cluster membership is reloaded from the store.
func (v *View) ToggleFavorite(ctx context.Context) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.finish()

	targets := v.targets()
	out := Outcome{Action: ActionFavorite, Verses: targets}
	if len(targets) == 0 {
		return out
	}

	verses := make([]cluster.NewVerse, 0, len(targets))
	for _, n := range targets {
		verses = append(verses, cluster.NewVerse{
			VerseNumber:    n,
			VerseText:      v.textOf(n),
			VerseReference: verse.Reference(v.reference, []string{n}),
		})
	}
	res := v.svc.clusters.ToggleFavorite(ctx, v.userID, v.chapter, v.reference, verses)

	out.Active = res.Favorited
	out.Success = res.Success
	switch {
	case res.Success:
		for _, n := range targets {
			v.state[v.chapter.Verse(n)].Favorited = res.Favorited
		}
	case v.userID != 0 && !res.Favorited:
		v.reloadFavorites(ctx)
	}
	if res.Cluster != nil {
		out.Reference = res.Cluster.Reference
	}
	return out
}

func (v *View) reloadFavorites(ctx context.Context) {
	favorites := v.svc.clusters.GetClusterVerseNumbers(ctx, v.userID, v.chapter)
	for loc, st := range v.state {
		st.Favorited = favorites.Has(loc.VerseNumber)
	}
}

// AskAI hands the selected text and its reference to the chat collaborator.
// Without a signed-in user there is no chat surface to receive it.
func (v *View) AskAI(ctx context.Context) Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.finish()

	out := v.selectedOutcome(ActionAsk)
	if out.Text == "" || v.svc.chat == nil || v.userID == 0 {
		return out
	}
	if err := v.svc.chat.Open(ctx, v.userID, out.Text, out.Reference); err != nil {
		v.svc.log.Error("chat hand-off failed", zap.Int("user_id", v.userID), zap.String("reference", out.Reference), zap.Error(err))
		return out
	}
	out.Success = true
	return out
}

// Copy returns the selected text for the clipboard. It always succeeds.
func (v *View) Copy() Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	defer v.finish()

	out := v.selectedOutcome(ActionCopy)
	out.Success = true
	return out
}

func (v *View) selectedOutcome(action string) Outcome {
	targets := v.targets()
	out := Outcome{
		Action:    action,
		Verses:    targets,
		Text:      v.sel.SelectedText(v.textOf),
		Reference: v.reference,
	}
	if len(targets) > 0 {
		out.Reference = verse.Reference(v.reference, targets)
	}
	return out
}
