// Package audex embeds the audience filter engine in a Go program.
//
// A Client owns one synthetic traveller population and one filter state.
// Filters are set directly or from free text, and the matching audience is
// recomputed on every read.
//
//	client, _ := audex.New(ctx, audex.WithSeed(7), audex.WithPopulationSize(5000))
//	defer client.Close()
//
//	aud := client.Audience()
//	_ = aud.Set(ctx, audex.Key("membershipTier"), audex.Text("VIP"))
//	res := aud.Interpret(ctx, "제주도 프리미엄 숙박을 찾는 고객")
//	fmt.Println(res.AudienceSize, aud.Stats(ctx).Percentage)
//
// Named filter states are kept in process memory unless WithValkey or
// WithRedis points the client at a server:
//
//	client, _ := audex.New(ctx, audex.WithValkey("localhost:6379", ""))
//	_, _ = client.Saved().Save(ctx, "vip-jeju")
package audex
