package fortune

import (
	"fmt"
	"math/rand/v2"
)

type lotGrade string

const (
	gradeGreat  lotGrade = "上上 Great Fortune"
	gradeGood   lotGrade = "上吉 Good Fortune"
	gradeMiddle lotGrade = "中吉 Moderate Fortune"
	gradeEven   lotGrade = "中平 Even"
	gradeLow    lotGrade = "下下 Caution"
)

type lot struct {
	grade  lotGrade
	title  string
	verse  string
	advice string
}

// Temple lots in the style of the Guandi oracle. Lot numbers are 1-based
// positions in this table.
var guangongLots = [...]lot{
	{gradeGreat, "The Peach Garden Oath", "Three hearts bound as one, no road is too long.", "Trust your allies and move together."},
	{gradeGood, "Riding a Thousand Li Alone", "The red horse runs, the passes open one by one.", "Keep faith and the way clears ahead of you."},
	{gradeMiddle, "Crossing at Changban", "The bridge is narrow, yet it holds.", "Hold your ground; the pressure passes."},
	{gradeEven, "Waiting at the Ford", "The river runs high; the ferry comes at dusk.", "Patience now, action later."},
	{gradeLow, "The Walls of Maicheng", "Cold wind in an empty city.", "Do not stake everything now. Guard what you have."},
	{gradeGreat, "The Green Dragon Blade", "The blade is forged; the hand that holds it is true.", "Act with integrity and nothing can stand against you."},
	{gradeGood, "Reading the Annals by Lamplight", "One lamp, one book, a clear heart.", "Study the matter carefully before you decide."},
	{gradeMiddle, "Flooding the Seven Armies", "Rain upstream turns the tide below.", "Let circumstances do part of the work."},
	{gradeEven, "Three Visits to the Thatched Cottage", "Knock a third time and the door opens.", "Persistence and courtesy win the counsel you need."},
	{gradeGood, "Single Blade to the Feast", "Walk in alone with a calm face.", "Meet the difficulty directly and with composure."},
	{gradeLow, "Fire at the Camp", "A spark left unwatched burns the tents.", "Check the small details you have been ignoring."},
	{gradeMiddle, "Returning the Gold Seal", "Hang up the seal and leave with honor.", "Refuse gains that would cost your name."},
	{gradeGreat, "The East Wind Arrives", "All is ready; the wind turns at last.", "Your preparations are complete. Go."},
	{gradeEven, "Plum Blossoms in Snow", "Cold branches, but the buds are set.", "Hardship now; growth is already underway."},
	{gradeGood, "Borrowing Arrows with Straw Boats", "Fog on the river brings a hundred thousand arrows.", "Turn the opposition's strength to your advantage."},
	{gradeLow, "The Lost Horse at the Frontier", "The horse is gone; who knows if it is loss.", "Do not judge the setback yet."},
	{gradeMiddle, "The Bamboo Raft", "Slow water, steady current.", "Steady effort reaches the far shore."},
	{gradeGood, "Moon over Jingzhou", "Bright moon over the river city.", "Clarity is coming. Watch for the sign."},
	{gradeEven, "The Empty Fort", "Open the gates and play the zither.", "Calm confidence deters trouble."},
	{gradeGreat, "Returning Home in Brocade", "The traveler returns with honors.", "Success is near. Remember those who helped."},
	{gradeLow, "Rain at the Pass", "Mud on the road, the wheels sink deep.", "Delay the journey; conditions will improve."},
	{gradeMiddle, "Sharpening the Spear Before Battle", "A keen edge is prepared in quiet.", "Prepare thoroughly; the moment is close."},
	{gradeGood, "Swallows Return in Spring", "The old nest waits under the eaves.", "A return or reunion brings good news."},
	{gradeEven, "The Well Beside the Road", "Travelers drink, the water stays.", "Be generous; your source will not run dry."},
}

func drawGuangong(rng *rand.Rand) Fortune {
	i := rng.IntN(len(guangongLots))
	l := guangongLots[i]
	return Fortune{
		Symbol:  fmt.Sprintf("Lot %d", i+1),
		Title:   fmt.Sprintf("%s · %s", l.grade, l.title),
		Verse:   l.verse,
		Meaning: string(l.grade),
		Advice:  l.advice,
	}
}
