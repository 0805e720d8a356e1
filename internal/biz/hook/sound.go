package hook

// CueBinding 符号 -> 音效
type CueBinding struct {
	Symbol string
	Cue    string
}

// SoundRule 指定轴上的 bonus 触发音效选择
type SoundRule struct {
	Reel int
	Cues []CueBinding
}

// Select 自上而下扫描，返回第一个命中符号的音效
func (r SoundRule) Select(symbols []string) (string, bool) {
	for _, s := range symbols {
		for _, b := range r.Cues {
			if b.Symbol == s {
				return b.Cue, true
			}
		}
	}
	return "", false
}

// Apply 在 ctx.Audio 上最多播放一个音效
func (r SoundRule) Apply(ctx *SpinContext) string {
	cue, ok := r.Select(ctx.Reel(r.Reel))
	if !ok {
		return ""
	}
	if ctx.Audio != nil {
		ctx.Audio.Play(cue)
	}
	return cue
}
