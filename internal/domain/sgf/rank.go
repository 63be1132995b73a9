package sgf

import "fmt"

// Rank converts a 0..100 skill rating to a Go rank.
//
//	 0-60  kyu, 30k down to 1k, 2 points per rank
//	61-81  amateur dan, 1d to 7d, 3 points per rank
//	82-100 professional, 1p to 9p, 2 points per rank
func Rank(skill int) string {
	switch {
	case skill <= 60:
		if skill < 0 {
			skill = 0
		}
		kyu := 30 - skill/2
		if kyu < 1 {
			kyu = 1
		}
		return fmt.Sprintf("%dk", kyu)
	case skill <= 81:
		dan := 1 + (skill-61)/3
		if dan > 7 {
			dan = 7
		}
		return fmt.Sprintf("%dd", dan)
	default:
		pro := 1 + (skill-82)/2
		if pro > 9 {
			pro = 9
		}
		return fmt.Sprintf("%dp", pro)
	}
}
