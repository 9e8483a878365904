package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit паникует, если одна из зависимостей не инициализирована.
// Аргументы парами: имя, значение. Указатель, map, func или chan со значением nil
// внутри интерфейса тоже считаются неинициализированными.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечетное число аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("CheckInit: имя зависимости должно быть строкой, получено %T", pairs[i]))
		}
		if isNil(pairs[i+1]) {
			panic(fmt.Sprintf("%s: зависимость не инициализирована", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}
