package repository

// dedupLastWins удаляет внутрибатчевые дубликаты по естественному ключу.
// При повторе ключа побеждает запись, встретившаяся позже; порядок
// первых вхождений сохраняется.
func dedupLastWins[T any, K comparable](items []T, key func(T) K) []T {
	idx := make(map[K]int, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if i, ok := idx[k]; ok {
			out[i] = it
			continue
		}
		idx[k] = len(out)
		out = append(out, it)
	}
	return out
}
