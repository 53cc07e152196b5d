package speech

// Word is a token from the fixed announcement vocabulary.
type Word string

const (
	WordAll     Word = "all"
	WordAboard  Word = "aboard"
	WordNext    Word = "next"
	WordStop    Word = "stop"
	WordStation Word = "station"
	WordMind    Word = "mind"
	WordThe     Word = "the"
	WordGap     Word = "gap"
	WordTrain   Word = "train"
	WordDeparts Word = "departs"
	WordNow     Word = "now"
)

// Vocabulary lists every word the talker can voice.
var Vocabulary = []Word{
	WordAll, WordAboard, WordNext, WordStop, WordStation,
	WordMind, WordThe, WordGap, WordTrain, WordDeparts, WordNow,
}

// Known reports whether w belongs to the vocabulary.
func Known(w Word) bool {
	for _, v := range Vocabulary {
		if v == w {
			return true
		}
	}
	return false
}
