// Copyright 2017 The Bazel Authors. All rights reserved.
// Copyright 2024 The Civiltime Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*Package datetime defines calendar dates, durations and zones for starlark,
backed by package civil.

  outline: datetime
    datetime defines calendar-aware date and time primitives for starlark
    path: datetime
    functions:
      datetime(year, month=1, day=1, hour=0, minute=0, second=0, millisecond=0, zone=None) datetime
        build a datetime from civil fields; invalid fields are an error
      date(year, month, day, zone=None) datetime
        midnight of the given day
      now(zone=None) datetime
        the current time, from SetNow or NowFunc
      now_utc() datetime
      today(zone=None) datetime
        midnight of the current day
      today_utc() datetime
      from_timestamp(x, zone=None) datetime
        x is Unix seconds, an int, a float or a decimal string such as "1.25"
      parse(s, pattern, zone=None, locale=None) datetime
        parse s with a pattern such as "yyyy-MM-dd HH:mm"
      duration(x=None, days=0, hours=0, minutes=0, seconds=0, milliseconds=0) duration
        x is a duration, an int number of milliseconds or an ISO-8601 string
      parse_duration(string) duration
        parse an ISO-8601 duration such as "PT1H30M"
      between(a, b) duration
        the elapsed time from a to b
      is_leap_year(int) bool
      zone(string) zone
        load a zone from the tz database, or "UTC" or "Local"

    values:
      epoch datetime
        2001-01-01T00:00:00Z
      utc zone
      local zone
      millisecond, second, minute, hour, day duration

    types:
      duration
        fields:
          days int
          hours int
          minutes int
          seconds int
          milliseconds int
          total_days float
          total_hours float
          total_minutes float
          total_seconds float
          total_milliseconds int
        functions:
          abs() duration
          equals(duration) bool
        operators:
          -duration = duration
          duration + duration = duration
          duration + datetime = datetime
          duration - duration = duration
          duration * int = duration
          duration / duration = float
          duration // duration = int
          duration // int = duration
          duration < duration = boolean
      datetime
        fields:
          year int
          month int
          day int
          hour int
          minute int
          second int
          millisecond int
          offset int
            minutes east of UTC
          zone zone
          calendar string
          day_of_week int
            1 is Sunday
          day_of_year int
          is_leap_year bool
          is_leap_month bool
          unix float
          since_reference_date float
          date datetime
            midnight of the same day
          time_of_day duration
        functions:
          add_fields(years=0, months=0, days=0, hours=0, minutes=0, seconds=0, milliseconds=0) datetime
            calendar arithmetic; the day is clamped to the resulting month
          add_days(int) datetime
          add_duration(duration) datetime
          subtract_duration(duration) datetime
          add_period(string) datetime
            add an ISO-8601 period such as "P1M2DT3H"
          in_zone(zone) datetime
            the same instant read in another zone
          utc() datetime
          local() datetime
          format(pattern=None, template=None, date_style=None, time_style=None, zone=None, locale=None) string
          unix_timestamp() string
            Unix seconds as a decimal string
          equals(datetime) bool
        operators:
          datetime + duration = datetime
          datetime - duration = datetime
          datetime - datetime = duration
          datetime == datetime = boolean
          datetime < datetime = boolean
      zone
        fields:
          name string
        functions:
          offset_at(datetime) int
*/
package datetime // import "go.civiltime.net/lib/datetime"
