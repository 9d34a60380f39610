package engine

import (
	"drifter-server/internal/domain"
	"drifter-server/pkg/api"
)

// BuildSnapshot собирает слепок симуляции для клиента. full добавляет
// статичную карту; она нужна только при первой отрисовке (INIT).
func (s *Simulation) BuildSnapshot(full bool) *api.ServerResponse {
	resp := &api.ServerResponse{
		Type:   "UPDATE",
		Time:   s.elapsed,
		Paused: s.paused,
		Night:  s.night,
		Player: &api.PlayerView{
			ID:     s.player.ID,
			X:      s.player.Pos.X,
			Y:      s.player.Pos.Y,
			Facing: s.player.Facing.String(),
		},
	}

	if full {
		resp.Type = "INIT"
		resp.Grid = &api.GridMeta{
			Width:    s.tm.Width,
			Height:   s.tm.Height,
			TileSize: s.tm.TileSize,
		}
		resp.Map = s.buildMapView()
	}

	for _, npc := range s.patrols.All() {
		rec, _ := s.alerts.Record(npc.ID)
		resp.NPCs = append(resp.NPCs, api.NPCView{
			ID:         npc.ID,
			Name:       npc.Template.Name,
			Faction:    string(npc.Template.Faction),
			X:          npc.Pos.X,
			Y:          npc.Pos.Y,
			Facing:     npc.Facing.String(),
			AlertState: rec.State.String(),
			AlertLevel: rec.Level,
		})
	}

	if s.combat.Active() || s.combat.Phase() == domain.PhaseEnded {
		resp.Combat = s.buildCombatView()
	}
	if s.lastOutcome != nil {
		resp.Outcome = buildOutcomeView(s.lastOutcome)
	}
	return resp
}

func (s *Simulation) buildMapView() []api.TileView {
	tiles := make([]api.TileView, 0, s.tm.Width*s.tm.Height)
	for row := 0; row < s.tm.Height; row++ {
		for col := 0; col < s.tm.Width; col++ {
			kind := s.tm.TileAt(col, row)
			props := kind.Props()
			tiles = append(tiles, api.TileView{
				Col:      col,
				Row:      row,
				Kind:     kind.String(),
				Walkable: props.Walkable,
				Cover:    props.Cover,
			})
		}
	}
	return tiles
}

func (s *Simulation) buildCombatView() *api.CombatView {
	action, target := s.combat.SelectedAction()
	view := &api.CombatView{
		Phase:          s.combat.Phase().String(),
		Round:          s.combat.Round(),
		SelectedAction: string(action),
		SelectedTarget: target,
	}

	for _, c := range s.combat.Roster() {
		cv := api.CombatantView{
			ID:         c.ID,
			Name:       c.Name,
			IsPlayer:   c.IsPlayer,
			Faction:    string(c.Faction),
			X:          c.Pos.X,
			Y:          c.Pos.Y,
			Status:     c.Status.String(),
			Injuries:   buildInjuryViews(c.Injuries),
			Suppressed: c.IsSuppressed(s.combat.Round()),
			Defense:    c.ActiveDefense(s.combat.Round()),
		}
		if c.IsPlayer {
			view.MovementRange = s.combat.MovementRange(c)
		}
		view.Combatants = append(view.Combatants, cv)
	}

	if intents := s.combat.PlannedIntents(); len(intents) > 0 {
		view.Intents = make(map[string]api.IntentView, len(intents))
		for id, plan := range intents {
			view.Intents[id] = api.IntentView{
				Action:   string(plan.Action),
				TargetID: plan.TargetID,
				X:        plan.Dest.X,
				Y:        plan.Dest.Y,
			}
		}
	}
	return view
}

func buildInjuryViews(injuries []domain.Injury) []api.InjuryView {
	if len(injuries) == 0 {
		return nil
	}
	out := make([]api.InjuryView, 0, len(injuries))
	for _, inj := range injuries {
		out = append(out, api.InjuryView{
			Type:            string(inj.Type),
			Severity:        inj.Severity,
			AccuracyPenalty: inj.AccuracyPenalty,
			MovePenalty:     inj.MovePenalty,
		})
	}
	return out
}

func buildOutcomeView(rec *domain.OutcomeRecord) *api.OutcomeView {
	view := &api.OutcomeView{
		Outcome:       string(rec.Outcome),
		FactionImpact: make(map[string]int, len(rec.FactionImpact)),
		Rounds:        rec.Rounds,
	}
	for faction, delta := range rec.FactionImpact {
		view.FactionImpact[string(faction)] = delta
	}
	if len(rec.Injuries) > 0 {
		view.Injuries = make(map[string][]api.InjuryView, len(rec.Injuries))
		for id, list := range rec.Injuries {
			view.Injuries[id] = buildInjuryViews(list)
		}
	}
	return view
}
