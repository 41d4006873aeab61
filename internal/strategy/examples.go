package strategy

// ExampleDocuments returns the two stock strategies used to demo the
// configurator: an evening download guarantee for platinum members and a
// throttle for high-bandwidth risk users.
func ExampleDocuments() []PolicyDocument {
	return []PolicyDocument{
		{
			Filter: Filter{
				Desc: "白金会员晚高峰下载保障策略",
				ResponseOnMatch: ResponseOnMatch{
					Strategy:   "spike_fill_valley",
					StrategyID: "example_1",
					SpeedInfo: SpeedSpec{
						Limit: ScopeLimits{
							Global: numberPtr(-1),
							Task:   numberPtr(-1),
						},
						Speed: SpeedTargets{
							Global: SpeedTier{BS: numberPtr(4096), VS: numberPtr(10240), TS: numberPtr(51200)},
							Task:   SpeedTier{BS: numberPtr(2048), VS: numberPtr(5120), TS: numberPtr(25600)},
						},
						Expire: numberPtr(3600),
					},
				},
				MatchAll: []MatchEntry{
					{Match: []string{"user.type", "in", "3"}},
					{Match: []string{"effective.period", "between", "18:00-23:00"}},
				},
			},
		},
		{
			Filter: Filter{
				Desc: "高带宽风险用户限速",
				ResponseOnMatch: ResponseOnMatch{
					Strategy:   "speed_limit",
					StrategyID: "example_2",
					SpeedInfo: SpeedSpec{
						Limit: ScopeLimits{
							Global: numberPtr(512),
							Task:   numberPtr(512),
						},
						Speed: SpeedTargets{
							Global: SpeedTier{BS: numberPtr(0), VS: numberPtr(0), TS: numberPtr(0)},
							Task:   SpeedTier{BS: numberPtr(0), VS: numberPtr(0), TS: numberPtr(0)},
						},
					},
				},
				MatchAll: []MatchEntry{
					{Match: []string{"user.type", "in", "1"}},
					{Match: []string{"tags.realtime", "==", "high_bw_usage"}},
				},
			},
		},
	}
}
