package fortune

import "math/rand/v2"

type tarotCard struct {
	numeral  string
	name     string
	upright  string
	reversed string
}

// Major Arcana, Rider-Waite numbering.
var majorArcana = [...]tarotCard{
	{"0", "The Fool", "A fresh start. Step forward with an open heart.", "Recklessness. Look before the leap."},
	{"I", "The Magician", "You already hold every tool you need.", "Scattered will. Gather your focus before you act."},
	{"II", "The High Priestess", "Trust the quiet knowing beneath the noise.", "Secrets kept from yourself. Listen inward."},
	{"III", "The Empress", "Abundance grows where care is given.", "Neglect of self. Tend your own garden first."},
	{"IV", "The Emperor", "Structure and steady authority bring order.", "Rigid control. Loosen the grip."},
	{"V", "The Hierophant", "Tradition and a trusted teacher guide the way.", "Outgrown rules. Question the convention."},
	{"VI", "The Lovers", "A choice made from the heart aligns your values.", "Misalignment. Be honest about what you want."},
	{"VII", "The Chariot", "Willpower carries you through opposing forces.", "Lost direction. Take the reins again."},
	{"VIII", "Strength", "Gentle courage tames what force cannot.", "Self-doubt. Your strength is still there."},
	{"IX", "The Hermit", "Solitude brings the answer into view.", "Isolation. Come back toward others."},
	{"X", "Wheel of Fortune", "The wheel turns in your favor.", "A downturn passes as all turns do."},
	{"XI", "Justice", "Fair outcomes follow honest actions.", "Imbalance. Own your part and set it right."},
	{"XII", "The Hanged Man", "Pause. A new angle reveals the path.", "Stalling. The waiting has run its course."},
	{"XIII", "Death", "An ending clears ground for what comes next.", "Resisting change only prolongs it."},
	{"XIV", "Temperance", "Patience and moderation blend opposites.", "Excess. Restore the balance."},
	{"XV", "The Devil", "Name the chain and you can slip it.", "Release. An old bind is loosening."},
	{"XVI", "The Tower", "Sudden upheaval breaks false structures.", "A disaster averted, or a change delayed."},
	{"XVII", "The Star", "Hope returns and healing follows.", "Faith wavers. Keep a small light burning."},
	{"XVIII", "The Moon", "Not all is as it seems. Move carefully.", "Confusion lifts and truth surfaces."},
	{"XIX", "The Sun", "Joy, clarity and success shine on you.", "Clouded joy. The sun is still behind them."},
	{"XX", "Judgement", "A calling. Rise and answer it.", "Self-judgement holds you back. Forgive and go on."},
	{"XXI", "The World", "Completion. A cycle closes in fulfilment.", "Loose ends remain. Finish what you started."},
}

func drawTarot(rng *rand.Rand) Fortune {
	card := majorArcana[rng.IntN(len(majorArcana))]
	f := Fortune{
		Symbol:  card.numeral,
		Title:   card.name,
		Meaning: card.upright,
	}
	if rng.IntN(2) == 1 {
		f.Title = card.name + " (Reversed)"
		f.Meaning = card.reversed
	}
	return f
}
