// Package fortune implements the divination engine behind the tell_fortune
// tool: Tarot (the 22 Major Arcana, upright or reversed), ZhouYi (the 64
// hexagrams in King Wen order) and Guangong temple lots.
//
// A Drawer produces a Reading keyed by method name. The Seeder decides how
// draws are randomized:
//
//	d := &fortune.Drawer{Seeder: fortune.DailySeeder{}}
//	r, err := d.Draw("Will the launch go well?", fortune.MethodAll)
//	fmt.Println(r.Summary())
//
// RandomSeeder (the default) makes every draw independent. DailySeeder makes
// the same question produce the same answer for the rest of the UTC day.
package fortune
