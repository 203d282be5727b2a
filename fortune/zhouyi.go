package fortune

import (
	"fmt"
	"math/rand/v2"
)

type hexagram struct {
	hanzi    string
	pinyin   string
	english  string
	judgment string
}

// King Wen sequence. The Unicode hexagram block starts at U+4DC0 in the same
// order, so the symbol for entry i is rune(0x4DC0+i).
var hexagrams = [64]hexagram{
	{"乾", "Qian", "The Creative", "Sublime success through perseverance."},
	{"坤", "Kun", "The Receptive", "Yield and follow; the gentle mare finds her way."},
	{"屯", "Zhun", "Difficulty at the Beginning", "Do not rush. Seek helpers and persevere."},
	{"蒙", "Meng", "Youthful Folly", "Ask sincerely once and the answer comes."},
	{"需", "Xu", "Waiting", "Wait with confidence. Crossing the great water brings gain."},
	{"訟", "Song", "Conflict", "Halt halfway. Pressing the quarrel to the end brings misfortune."},
	{"師", "Shi", "The Army", "Discipline under a steady leader wins the day."},
	{"比", "Bi", "Holding Together", "Unite with others while the moment is open."},
	{"小畜", "Xiao Chu", "The Taming Power of the Small", "Dense clouds, no rain yet. Small steps prepare the way."},
	{"履", "Lü", "Treading", "Step on the tiger's tail with care and it will not bite."},
	{"泰", "Tai", "Peace", "Heaven and earth meet. The small departs, the great approaches."},
	{"否", "Pi", "Standstill", "Stagnation. Hold to your worth and wait it out."},
	{"同人", "Tong Ren", "Fellowship", "Open fellowship brings success."},
	{"大有", "Da You", "Possession in Great Measure", "Supreme success. Share what you hold."},
	{"謙", "Qian", "Modesty", "The modest carry things through to the end."},
	{"豫", "Yu", "Enthusiasm", "Rouse others and set things in motion."},
	{"隨", "Sui", "Following", "Adapt to the time and success follows."},
	{"蠱", "Gu", "Work on What Has Been Spoiled", "Repair what was neglected. Consider before and after."},
	{"臨", "Lin", "Approach", "Good fortune approaches. Use it before the season turns."},
	{"觀", "Guan", "Contemplation", "Observe closely before you act."},
	{"噬嗑", "Shi He", "Biting Through", "Bite through the obstacle. Clear judgement helps."},
	{"賁", "Bi", "Grace", "Beauty helps in small matters."},
	{"剝", "Bo", "Splitting Apart", "Do not go anywhere now. Let the decay run its course."},
	{"復", "Fu", "Return", "The turning point. What was lost comes back."},
	{"無妄", "Wu Wang", "Innocence", "Act without guile and success follows."},
	{"大畜", "Da Chu", "The Taming Power of the Great", "Hold firm and store your strength."},
	{"頤", "Yi", "Nourishment", "Watch what you take in and what you give out."},
	{"大過", "Da Guo", "Preponderance of the Great", "The ridgepole sags. Act, and act soon."},
	{"坎", "Kan", "The Abysmal", "Danger repeated. Stay sincere and keep moving like water."},
	{"離", "Li", "The Clinging", "Cling to what is bright and true."},
	{"咸", "Xian", "Influence", "Mutual attraction. Remain open and receptive."},
	{"恆", "Heng", "Duration", "Endurance in the right course brings success."},
	{"遯", "Dun", "Retreat", "Withdraw in good time. Small persistence still pays."},
	{"大壯", "Da Zhuang", "The Power of the Great", "Strength is yours. Use it rightly."},
	{"晉", "Jin", "Progress", "Rapid advance, like the sun rising over the earth."},
	{"明夷", "Ming Yi", "Darkening of the Light", "Hide your light and endure the dark."},
	{"家人", "Jia Ren", "The Family", "Order at home steadies everything else."},
	{"睽", "Kui", "Opposition", "Estrangement. Small matters can still succeed."},
	{"蹇", "Jian", "Obstruction", "Turn back and seek help. The way around is open."},
	{"解", "Jie", "Deliverance", "Tension releases. Return to normal quickly."},
	{"損", "Sun", "Decrease", "Simplify. Less given sincerely is enough."},
	{"益", "Yi", "Increase", "Gain comes. Undertake something."},
	{"夬", "Guai", "Breakthrough", "Resolutely declare the truth."},
	{"姤", "Gou", "Coming to Meet", "An unexpected encounter. Do not be led astray."},
	{"萃", "Cui", "Gathering Together", "Gather people around a shared purpose."},
	{"升", "Sheng", "Pushing Upward", "Rise steadily, one step at a time."},
	{"困", "Kun", "Oppression", "Exhaustion. Words go unheard; keep your resolve."},
	{"井", "Jing", "The Well", "The source does not change. Draw from it."},
	{"革", "Ge", "Revolution", "When the day comes, change is trusted."},
	{"鼎", "Ding", "The Cauldron", "Nourish what is worthy. Supreme good fortune."},
	{"震", "Zhen", "The Arousing", "Thunder startles, then laughter follows."},
	{"艮", "Gen", "Keeping Still", "Rest the back. Stillness brings clarity."},
	{"漸", "Jian", "Development", "Gradual progress, like a tree on the mountain."},
	{"歸妹", "Gui Mei", "The Marrying Maiden", "Know your place before you advance."},
	{"豐", "Feng", "Abundance", "Be like the sun at midday. Do not be sad."},
	{"旅", "Lü", "The Wanderer", "Travel light and stay correct."},
	{"巽", "Xun", "The Gentle", "Penetrate gently and persistently, like the wind."},
	{"兌", "Dui", "The Joyous", "Joy shared is success."},
	{"渙", "Huan", "Dispersion", "Dissolve rigidity. Gather at the temple."},
	{"節", "Jie", "Limitation", "Set limits, but not bitter ones."},
	{"中孚", "Zhong Fu", "Inner Truth", "Sincerity reaches even the pigs and fishes."},
	{"小過", "Xiao Guo", "Preponderance of the Small", "Small things yes, great things no."},
	{"既濟", "Ji Ji", "After Completion", "Success in small matters. Guard against disorder."},
	{"未濟", "Wei Ji", "Before Completion", "Not yet across. Tread carefully like the young fox."},
}

func drawZhouYi(rng *rand.Rand) Fortune {
	i := rng.IntN(len(hexagrams))
	h := hexagrams[i]
	return Fortune{
		Symbol:  string(rune(0x4DC0 + i)),
		Title:   fmt.Sprintf("%d. %s %s (%s)", i+1, h.hanzi, h.pinyin, h.english),
		Meaning: h.judgment,
	}
}
