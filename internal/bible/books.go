package bible

// Registry is the read-only lookup of canonical traditional-script
// book names and their accepted aliases. The citation parser consults
// it; it never owns or mutates it.
type Registry struct {
	names map[string]string
}

// NewRegistry builds a registry from canonical names plus an
// alias-to-canonical map. Canonical names always resolve to themselves.
func NewRegistry(canonical []string, aliases map[string]string) *Registry {
	names := make(map[string]string, len(canonical)+len(aliases))
	for _, name := range canonical {
		names[name] = name
	}
	for alias, name := range aliases {
		names[alias] = name
	}
	return &Registry{names: names}
}

// Lookup resolves a book name or alias to its canonical form.
func (r *Registry) Lookup(name string) (string, bool) {
	canonical, ok := r.names[name]
	return canonical, ok
}

// canonicalBooks lists the 66 books of the Protestant canon in the
// traditional-script names used by the Chinese Union Version.
var canonicalBooks = []string{
	"創世記", "出埃及記", "利未記", "民數記", "申命記",
	"約書亞記", "士師記", "路得記",
	"撒母耳記上", "撒母耳記下", "列王紀上", "列王紀下",
	"歷代志上", "歷代志下", "以斯拉記", "尼希米記", "以斯帖記",
	"約伯記", "詩篇", "箴言", "傳道書", "雅歌",
	"以賽亞書", "耶利米書", "耶利米哀歌", "以西結書", "但以理書",
	"何西阿書", "約珥書", "阿摩司書", "俄巴底亞書", "約拿書",
	"彌迦書", "那鴻書", "哈巴谷書", "西番雅書", "哈該書",
	"撒迦利亞書", "瑪拉基書",
	"馬太福音", "馬可福音", "路加福音", "約翰福音", "使徒行傳",
	"羅馬書", "哥林多前書", "哥林多後書", "加拉太書", "以弗所書",
	"腓立比書", "歌羅西書", "帖撒羅尼迦前書", "帖撒羅尼迦後書",
	"提摩太前書", "提摩太後書", "提多書", "腓利門書",
	"希伯來書", "雅各書", "彼得前書", "彼得後書",
	"約翰壹書", "約翰貳書", "約翰參書", "猶大書", "啟示錄",
}

// bookAliases maps the customary short forms onto canonical names.
var bookAliases = map[string]string{
	"創": "創世記", "出": "出埃及記", "利": "利未記", "民": "民數記", "申": "申命記",
	"書": "約書亞記", "士": "士師記", "得": "路得記",
	"撒上": "撒母耳記上", "撒下": "撒母耳記下",
	"王上": "列王紀上", "王下": "列王紀下",
	"代上": "歷代志上", "代下": "歷代志下",
	"拉": "以斯拉記", "尼": "尼希米記", "斯": "以斯帖記",
	"伯": "約伯記", "詩": "詩篇", "箴": "箴言", "傳": "傳道書", "歌": "雅歌",
	"賽": "以賽亞書", "耶": "耶利米書", "哀": "耶利米哀歌",
	"結": "以西結書", "但": "但以理書",
	"何": "何西阿書", "珥": "約珥書", "摩": "阿摩司書",
	"俄": "俄巴底亞書", "拿": "約拿書", "彌": "彌迦書", "鴻": "那鴻書",
	"哈": "哈巴谷書", "番": "西番雅書", "該": "哈該書",
	"亞": "撒迦利亞書", "瑪": "瑪拉基書",
	"太": "馬太福音", "可": "馬可福音", "路": "路加福音",
	"約": "約翰福音", "徒": "使徒行傳",
	"羅": "羅馬書", "林前": "哥林多前書", "林後": "哥林多後書",
	"加": "加拉太書", "弗": "以弗所書", "腓": "腓立比書", "西": "歌羅西書",
	"帖前": "帖撒羅尼迦前書", "帖後": "帖撒羅尼迦後書",
	"提前": "提摩太前書", "提後": "提摩太後書",
	"多": "提多書", "門": "腓利門書", "來": "希伯來書", "雅": "雅各書",
	"彼前": "彼得前書", "彼後": "彼得後書",
	"約壹": "約翰壹書", "約貳": "約翰貳書", "約參": "約翰參書",
	"猶": "猶大書", "啟": "啟示錄",

	// Spelling variants that show up in service sheets.
	"列王記上": "列王紀上", "列王記下": "列王紀下",
	"歷代誌上": "歷代志上", "歷代誌下": "歷代志下",
}

// DefaultRegistry returns the registry of the full Protestant canon
// with customary abbreviations.
func DefaultRegistry() *Registry {
	return NewRegistry(canonicalBooks, bookAliases)
}
